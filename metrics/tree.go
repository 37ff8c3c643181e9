package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wyfcoding/ordtree/rbtree"
)

type treeVecs struct {
	rotations *prometheus.CounterVec
	fixups    *prometheus.CounterVec
	size      *prometheus.GaugeVec
}

// TreeObserver 将红黑树的旋转、修复分支与规模变化记录为 Prometheus 指标。
type TreeObserver struct {
	rotations *prometheus.CounterVec
	fixups    *prometheus.CounterVec
	size      prometheus.Gauge
	tree      string
}

var _ rbtree.Observer = (*TreeObserver)(nil)

// TreeObserver 返回以 tree 标签区分的观察者，同一个 Metrics 上的多棵树共享指标族。
func (m *Metrics) TreeObserver(tree string) *TreeObserver {
	if m.tree == nil {
		m.tree = &treeVecs{
			rotations: m.NewCounterVec(&prometheus.CounterOpts{
				Subsystem: "rbtree",
				Name:      "rotations_total",
				Help:      "Total number of rotations performed by repair passes",
			}, []string{"tree", "direction"}),
			fixups: m.NewCounterVec(&prometheus.CounterOpts{
				Subsystem: "rbtree",
				Name:      "fixups_total",
				Help:      "Total number of insert/remove repair cases reached",
			}, []string{"tree", "case"}),
			size: m.NewGaugeVec(&prometheus.GaugeOpts{
				Subsystem: "rbtree",
				Name:      "size",
				Help:      "Number of keys stored in the tree",
			}, []string{"tree"}),
		}
	}

	return &TreeObserver{
		rotations: m.tree.rotations,
		fixups:    m.tree.fixups,
		size:      m.tree.size.WithLabelValues(tree),
		tree:      tree,
	}
}

// OnRotate 实现 rbtree.Observer。
func (o *TreeObserver) OnRotate(dir rbtree.Direction) {
	o.rotations.WithLabelValues(o.tree, string(dir)).Inc()
}

// OnFixup 实现 rbtree.Observer。
func (o *TreeObserver) OnFixup(c rbtree.FixupCase) {
	o.fixups.WithLabelValues(o.tree, string(c)).Inc()
}

// OnSize 实现 rbtree.Observer。
func (o *TreeObserver) OnSize(size int) {
	o.size.Set(float64(size))
}
