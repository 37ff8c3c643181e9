package rbtree

import (
	"cmp"
	"context"
	"log/slog"
	"reflect"

	"github.com/wyfcoding/ordtree/logging"
	"github.com/wyfcoding/ordtree/xerrors"
)

var (
	// ErrNullArgument 键为 nil.
	ErrNullArgument = xerrors.ErrNullArgument
	// ErrDuplicateKey 插入已存在的键.
	ErrDuplicateKey = xerrors.ErrDuplicateKey
	// ErrKeyNotFound 删除或查找不存在的键.
	ErrKeyNotFound = xerrors.ErrKeyNotFound
	// ErrInvariantViolation 内部结构损坏, 正确实现下不可达.
	ErrInvariantViolation = xerrors.ErrInvariantViolation
)

// Comparator 比较器函数原型, 返回负数、零、正数分别表示 a<b、a==b、a>b.
type Comparator[T any] func(a, b T) int

// RBTree 红黑树. 非并发安全: 变更操作需要调用方串行化, 只读查询之间可以并发.
type RBTree[T any] struct {
	root     *RBNode[T]
	compare  Comparator[T]
	logger   *slog.Logger
	observer Observer
	size     int
	// nilKey 判断键是否为 nil; cmp.Ordered 键不可能为 nil, 无需反射
	nilKey func(T) bool
}

// Option 定义 RBTree 构造参数.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer Observer
}

// WithLogger 注入日志记录器, 修复分支与旋转以 Debug 级别输出.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.Logger
		}
	}
}

// WithObserver 注入结构变化观察者.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// NewRBTree 创建一个新的红黑树.
func NewRBTree[T any](comp Comparator[T], opts ...Option) *RBTree[T] {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &RBTree[T]{
		compare:  comp,
		logger:   o.logger,
		observer: o.observer,
		nilKey:   isNilKey[T],
	}
}

// NewOrderedRBTree 为实现了 cmp.Ordered 的类型创建红黑树.
func NewOrderedRBTree[T cmp.Ordered](opts ...Option) *RBTree[T] {
	t := NewRBTree(cmp.Compare[T], opts...)
	t.nilKey = func(T) bool { return false }
	return t
}

// Root 返回根节点, 空树返回 nil.
func (t *RBTree[T]) Root() *RBNode[T] {
	return t.root
}

// Size 返回键的数量.
func (t *RBTree[T]) Size() int {
	return t.size
}

// IsEmpty 判断树是否为空.
func (t *RBTree[T]) IsEmpty() bool {
	return t.size == 0
}

// Contains 判断树中是否存在与 key 相等的键.
func (t *RBTree[T]) Contains(key T) (bool, error) {
	if t.nilKey(key) {
		return false, nullArgument("contains")
	}
	return t.find(key) != nil, nil
}

// Search 返回树中与 key 相等的已存储键.
func (t *RBTree[T]) Search(key T) (T, error) {
	var zero T
	if t.nilKey(key) {
		return zero, nullArgument("search")
	}

	node := t.find(key)
	if node == nil {
		return zero, ErrKeyNotFound.Clone().WithContext("op", "search").WithContext("key", key)
	}
	return node.value, nil
}

func (t *RBTree[T]) find(key T) *RBNode[T] {
	curr := t.root
	for curr != nil {
		c := t.compare(key, curr.value)
		switch {
		case c == 0:
			return curr
		case c < 0:
			curr = curr.left
		default:
			curr = curr.right
		}
	}
	return nil
}

// replace 用 replacement 替换 node 在树中的位置, replacement 可以为 nil.
func (t *RBTree[T]) replace(node, replacement *RBNode[T]) {
	if replacement != nil {
		replacement.parent = node.parent
	}

	switch {
	case node.parent == nil:
		t.root = replacement
	case node.isLeftChild():
		node.parent.left = replacement
	default:
		node.parent.right = replacement
	}
	node.parent = nil
}

func (t *RBTree[T]) fixup(c FixupCase, node *RBNode[T]) {
	t.observer.OnFixup(c)
	if t.debugEnabled() {
		t.logger.Debug("rbtree fixup", "case", string(c), "key", node.value)
	}
}

// debugEnabled 避免在未开启 Debug 时为日志参数装箱.
func (t *RBTree[T]) debugEnabled() bool {
	return t.logger.Enabled(context.Background(), slog.LevelDebug)
}

func nullArgument(op string) error {
	return ErrNullArgument.Clone().WithContext("op", op)
}

// isNilKey 判断泛型键是否为 nil: nil 接口, 或值为 nil 的指针、map、切片、函数、通道.
func isNilKey[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
