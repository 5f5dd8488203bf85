package main

import (
	"strings"
	"testing"
)

func TestRenderPage(t *testing.T) {
	page := renderPage(htmlPage, "play.example.com", "2200")

	if !strings.Contains(page, "ssh -t -p 2200 play.example.com") {
		t.Error("connection command not filled in")
	}
	if strings.Contains(page, "{{.") {
		t.Error("unreplaced placeholder left in page")
	}
}
