package harbour

import (
	"reflect"
	"sync"

	"github.com/petersunbag/coven"
	"github.com/pkg/errors"
)

type projectionKey struct {
	src reflect.Type
	dst reflect.Type
}

var (
	covenMutex sync.RWMutex
	covenMap   = make(map[projectionKey]*coven.Converter)
)

// Project 将实体中同名字段复制到新的 D 中，src 为 nil 时返回 nil
func Project[D any](src any) (*D, error) {
	if IsNull(src) {
		return nil, nil
	}
	dst := new(D)
	converter, err := getProjection(reflect.TypeOf(dst), reflect.TypeOf(src), dst, src)
	if err != nil {
		return nil, err
	}
	if err = converter.Convert(dst, src); err != nil {
		return nil, errors.Wrapf(err, "实体[%T]映射到[%T]失败！", src, dst)
	}
	return dst, nil
}

// ProjectList 按顺序映射实体列表，nil 元素映射为 nil
func ProjectList[D, S any](src []*S) ([]*D, error) {
	list := make([]*D, 0, len(src))
	for _, item := range src {
		if item == nil {
			list = append(list, nil)
			continue
		}
		dst, err := Project[D](item)
		if err != nil {
			return nil, err
		}
		list = append(list, dst)
	}
	return list, nil
}

func getProjection(dstType, srcType reflect.Type, dst, src any) (*coven.Converter, error) {
	key := projectionKey{src: srcType, dst: dstType}
	covenMutex.RLock()
	converter, ok := covenMap[key]
	covenMutex.RUnlock()
	if ok {
		return converter, nil
	}

	covenMutex.Lock()
	defer covenMutex.Unlock()
	if converter, ok = covenMap[key]; ok {
		return converter, nil
	}
	converter, err := coven.NewConverter(dst, src)
	if err != nil {
		return nil, errors.Wrapf(err, "创建映射[%v]->[%v]失败！", srcType, dstType)
	}
	covenMap[key] = converter
	return converter, nil
}
