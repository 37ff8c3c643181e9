// Package rbtree 提供基于比较器的红黑树有序键容器.
package rbtree

// Color 红黑树节点颜色.
type Color uint8

const (
	// Red 红色节点.
	Red Color = iota
	// Black 黑色节点.
	Black
	// DoubleBlack 删除修复期间的临时标记，表示该子树缺少一个黑色单位.
	DoubleBlack
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	case DoubleBlack:
		return "double-black"
	default:
		return "unknown"
	}
}

// RBNode 红黑树节点. 链接与颜色只在修复过程与旋转中被修改.
type RBNode[T any] struct {
	value  T
	left   *RBNode[T]
	right  *RBNode[T]
	parent *RBNode[T]
	color  Color
}

// Value 返回节点存储的键.
func (n *RBNode[T]) Value() T { return n.value }

// Color 返回节点颜色.
func (n *RBNode[T]) Color() Color { return n.color }

// Left 返回左孩子, 不存在时为 nil.
func (n *RBNode[T]) Left() *RBNode[T] { return n.left }

// Right 返回右孩子, 不存在时为 nil.
func (n *RBNode[T]) Right() *RBNode[T] { return n.right }

// Parent 返回父节点, 根节点返回 nil.
func (n *RBNode[T]) Parent() *RBNode[T] { return n.parent }

func (n *RBNode[T]) isRightChild() bool {
	return n.parent != nil && n.parent.right == n
}

func (n *RBNode[T]) isLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

// sibling 返回父节点的另一个孩子.
func (n *RBNode[T]) sibling() *RBNode[T] {
	if n.parent == nil {
		return nil
	}
	if n.isLeftChild() {
		return n.parent.right
	}
	return n.parent.left
}

// isRed 将 nil 视为黑色叶子.
func isRed[T any](n *RBNode[T]) bool {
	return n != nil && n.color == Red
}

func minimum[T any](n *RBNode[T]) *RBNode[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maximum[T any](n *RBNode[T]) *RBNode[T] {
	for n.right != nil {
		n = n.right
	}
	return n
}
