package main

import (
	"testing"

	"github.com/iafilius/SignalPlot/src/config"
	"github.com/iafilius/SignalPlot/src/figure"
	"github.com/iafilius/SignalPlot/src/record"
)

func TestNavigationStaysInBounds(t *testing.T) {
	s := newViewState(config.DefaultStyle())
	s.setSections(3)
	if s.prev() {
		t.Fatalf("prev at first section should not move")
	}
	if !s.next() || !s.next() {
		t.Fatalf("next should reach the last section")
	}
	if s.next() {
		t.Fatalf("next past the last section should not move")
	}
	if got := s.label(); got != "Section 3 / 3" {
		t.Fatalf("label %q", got)
	}
}

func TestSetSectionsKeepsPosition(t *testing.T) {
	s := newViewState(config.DefaultStyle())
	s.setSections(4)
	s.index = 3
	s.setSections(2)
	if s.index != 1 {
		t.Fatalf("index %d", s.index)
	}
	s.setSections(10)
	if s.index != 5 {
		t.Fatalf("index %d", s.index)
	}
	s.setSections(0)
	if s.sections != 1 || s.index != 0 {
		t.Fatalf("sections %d index %d", s.sections, s.index)
	}
}

func TestFHRModeIgnoresSections(t *testing.T) {
	s := newViewState(config.DefaultStyle())
	s.setSections(5)
	s.index = 2
	s.setMode(figure.ModeFHR)
	if got := s.label(); got != "Section 1 / 1" {
		t.Fatalf("label %q", got)
	}
	if s.next() {
		t.Fatalf("fhr view has one section")
	}
}

func TestRenderCurrentSection(t *testing.T) {
	s := newViewState(config.DefaultStyle())
	if _, err := s.render(800); err == nil {
		t.Fatalf("render without a record should fail")
	}
	rec := record.Demo()
	if err := rec.Normalize(); err != nil {
		t.Fatal(err)
	}
	s.setRecord(rec)
	s.setSections(4)
	s.next()
	img, err := s.render(800)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 800 {
		t.Fatalf("width %d", img.Bounds().Dx())
	}
}

func TestParseSections(t *testing.T) {
	for in, want := range map[string]int{"5": 5, "x": 1, "0": 1, "": 1} {
		if got := parseSections(in); got != want {
			t.Fatalf("parseSections(%q) = %d, want %d", in, got, want)
		}
	}
}
