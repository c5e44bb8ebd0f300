package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnPassStart(ctx, "array", "digit-0")
	p.OnPassComplete(ctx, "array", "digit-0", 15, time.Second, nil)
	p.OnEmitStart(ctx, "WAFER", 15)
	p.OnEmitComplete(ctx, "WAFER", 15, time.Second, nil)

	d := NoopDesignHooks{}
	d.OnDesignRead(ctx, "wafer.json", 3, time.Second, nil)
	d.OnDesignWrite(ctx, "wafer.json", time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Design().(NoopDesignHooks); !ok {
		t.Error("Design() should return NoopDesignHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customDesign := &testDesignHooks{}
	SetDesignHooks(customDesign)
	if Design() != customDesign {
		t.Error("SetDesignHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Design().(NoopDesignHooks); !ok {
		t.Error("Reset() should restore NoopDesignHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testDesignHooks struct{ NoopDesignHooks }
