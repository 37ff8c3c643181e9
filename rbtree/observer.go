package rbtree

// Direction 旋转方向.
type Direction string

const (
	// RotateLeft 右孩子上升.
	RotateLeft Direction = "left"
	// RotateRight 左孩子上升.
	RotateRight Direction = "right"
)

// FixupCase 插入或删除修复过程中命中的分支.
type FixupCase string

const (
	// InsertRoot 新节点成为根, 直接染黑.
	InsertRoot FixupCase = "insert_root"
	// InsertBlackParent 父节点为黑, 无需修复.
	InsertBlackParent FixupCase = "insert_black_parent"
	// InsertRedUncle 父与叔均为红, 重新着色后在祖父处继续.
	InsertRedUncle FixupCase = "insert_red_uncle"
	// InsertBlackUncle 叔为黑, 经一到两次旋转结束.
	InsertBlackUncle FixupCase = "insert_black_uncle"

	// RemoveTwoChildren 目标有两个孩子, 改为删除其后继.
	RemoveTwoChildren FixupCase = "remove_two_children"
	// RemoveOneChild 唯一的孩子顶替被删节点.
	RemoveOneChild FixupCase = "remove_one_child"
	// RemoveTrivialLeaf 红色叶子或根直接摘除.
	RemoveTrivialLeaf FixupCase = "remove_trivial_leaf"
	// RemoveRedSibling 兄弟为红, 旋转后对同一双黑节点重新分派.
	RemoveRedSibling FixupCase = "remove_red_sibling"
	// RemoveRedNephew 至少一个侄子为红, 旋转后结束.
	RemoveRedNephew FixupCase = "remove_red_nephew"
	// RemoveBlackNephews 两个侄子均为黑, 兄弟染红, 双黑上移.
	RemoveBlackNephews FixupCase = "remove_black_nephews"
	// RemoveRootAbsorbs 双黑到达根, 被根吸收.
	RemoveRootAbsorbs FixupCase = "remove_root_absorbs"
	// RemoveRedParentStop 父节点为红, 染黑后结束.
	RemoveRedParentStop FixupCase = "remove_red_parent"
)

// Observer 接收树内部的结构变化事件, 用于指标采集.
// 回调在变更操作内部同步执行, 不得回调树本身.
type Observer interface {
	OnRotate(dir Direction)
	OnFixup(c FixupCase)
	OnSize(size int)
}

type nopObserver struct{}

func (nopObserver) OnRotate(Direction) {}
func (nopObserver) OnFixup(FixupCase)  {}
func (nopObserver) OnSize(int)         {}
