package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeService struct {
	name     string
	deps     []string
	initErr  error
	startErr error
	stopErr  error
	log      *[]string
	args     []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}
func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return f.startErr
}
func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return f.stopErr
}

func TestHub_Lifecycle(t *testing.T) {
	var log []string
	h := NewHub()
	clock := &fakeService{name: "clock", deps: []string{"audio"}, log: &log}
	audio := &fakeService{name: "audio", log: &log}

	if err := h.Register(clock, 20); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(audio); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(&fakeService{name: "audio", log: &log}); err == nil {
		t.Error("duplicate registration should fail")
	}

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := h.StopAll(); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"init:audio", "init:clock", "start:audio", "start:clock", "stop:clock", "stop:audio"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
	if !reflect.DeepEqual(clock.args, []any{20}) {
		t.Errorf("clock args = %v", clock.args)
	}
	if got, ok := Lookup[*fakeService](h, "audio"); !ok || got != audio {
		t.Error("Lookup returned the wrong service")
	}
	if _, ok := Lookup[*fakeService](h, "radar"); ok {
		t.Error("Lookup found an unregistered service")
	}
	if !reflect.DeepEqual(h.Order(), []string{"audio", "clock"}) {
		t.Errorf("order = %v", h.Order())
	}
	if !reflect.DeepEqual(h.Names(), []string{"audio", "clock"}) {
		t.Errorf("names = %v", h.Names())
	}
}

func TestHub_Rollback(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, startErr: errors.New("boom"), log: &log})

	if err := h.InitAll(); err != nil {
		t.Fatal(err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("expected start failure")
	}
	want := []string{"init:a", "init:b", "start:a", "start:b", "stop:a"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
}

func TestHub_DependencyErrors(t *testing.T) {
	var log []string

	h := NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"missing"}, log: &log})
	if err := h.InitAll(); err == nil {
		t.Error("expected unregistered dependency error")
	}

	h = NewHub()
	h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	err := h.InitAll()
	if !errors.Is(err, ErrCircularDependency) {
		t.Errorf("expected ErrCircularDependency, got %v", err)
	} else if !strings.Contains(err.Error(), "a -> b -> a") {
		t.Errorf("cycle path missing: %v", err)
	}

	if err := NewHub().StartAll(); err == nil {
		t.Error("StartAll before InitAll should fail")
	}
}

func TestHub_StopErrorsJoined(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", stopErr: errors.New("a failed"), log: &log})
	h.Register(&fakeService{name: "b", stopErr: errors.New("b failed"), log: &log})
	h.InitAll()
	h.StartAll()

	err := h.StopAll()
	if err == nil {
		t.Fatal("expected joined error")
	}
	t.Logf("stop error: %v", err)
	if len(log) != 6 {
		t.Errorf("every service should be stopped: %v", log)
	}
}

func TestHub_InitRollback(t *testing.T) {
	var log []string
	h := NewHub()
	h.Register(&fakeService{name: "a", log: &log})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("no device"), log: &log})

	if err := h.InitAll(); err == nil {
		t.Fatal("expected init failure")
	}
	want := []string{"init:a", "init:b", "stop:a"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
	if err := h.StartAll(); err == nil {
		t.Error("StartAll after failed InitAll should fail")
	}
}
