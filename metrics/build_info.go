package metrics

import (
	"runtime"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterBuildInfo 以常量 1 导出程序名、版本与 Go 版本. 同一 Metrics 上只注册一次.
// version 为空时取主模块版本 (go install 构建), 仍不可得时记为 "devel".
func (m *Metrics) RegisterBuildInfo(name, version string) {
	if m == nil || m.BuildInfo != nil {
		return
	}
	if version == "" {
		version = moduleVersion()
	}

	m.BuildInfo = m.NewGaugeVec(&prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build information of the tree inspector",
	}, []string{"name", "version", "go_version"})
	m.BuildInfo.WithLabelValues(name, version, runtime.Version()).Set(1)
}

func moduleVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}
