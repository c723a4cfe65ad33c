package adapters_test

import (
	"testing"

	"github.com/momentics/stresskit/adapters"
)

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	if cfg := ctrl.GetConfig(); len(cfg) != 0 {
		t.Error("Expected empty config on init")
	}

	if err := ctrl.SetConfig(map[string]any{"trials": 10}); err != nil {
		t.Fatal(err)
	}
	if ctrl.GetConfig()["trials"] != 10 {
		t.Error("SetConfig did not apply")
	}

	ctrl.SetMetric("trials.anomalies", int64(3))
	ctrl.AddMetric("trials.runs", 1)
	if n := ctrl.AddMetric("trials.runs", 1); n != 2 {
		t.Errorf("AddMetric = %d, want 2", n)
	}
	ctrl.RegisterDebugProbe("answer", func() any { return 42 })
	stats := ctrl.Stats()
	if stats["trials.anomalies"] != int64(3) {
		t.Errorf("metric missing: %v", stats)
	}
	if stats["debug.answer"] != 42 {
		t.Errorf("probe missing: %v", stats)
	}
	if _, ok := stats["debug.platform.cpus"]; !ok {
		t.Errorf("platform probe missing: %v", stats)
	}
}
