package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestCapRunes(t *testing.T) {
	if CapRunes("schönbezüge", 4) != "schö" {
		t.Errorf("got %s", CapRunes("schönbezüge", 4))
	}
	if CapRunes("kurz", 255) != "kurz" {
		t.Error("short string unchanged")
	}
	if CapRunes("x", 0) != "x" {
		t.Error("maxRunes 0 returns as-is")
	}
}
