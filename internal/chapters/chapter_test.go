package chapters

import (
	"strings"
	"testing"

	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	chs := []Chapter{
		{Chapter: providers.Chapter{Title: "Chapter One", URL: "http://a"}, Content: "Hello.\n\n"},
		{Chapter: providers.Chapter{Title: "Chapter Two", URL: "http://b"}, Content: "World.\n\n"},
	}

	want := "第1章: Chapter One\n\nHello.\n\n==================================================\n\n" +
		"第2章: Chapter Two\n\nWorld.\n\n==================================================\n\n"

	assert.Equal(t, want, Assemble(chs))
}

func TestAssembleEmpty(t *testing.T) {
	assert.Equal(t, "", Assemble(nil))
}

func TestAssembleNumberingIsContiguous(t *testing.T) {
	// chapters 2 and 4 of the chapter list failed
	chs := []Chapter{
		{Chapter: providers.Chapter{Title: "一"}},
		{Chapter: providers.Chapter{Title: "三"}},
		{Chapter: providers.Chapter{Title: "五"}},
	}

	out := Assemble(chs)
	assert.Contains(t, out, "第1章: 一\n")
	assert.Contains(t, out, "第2章: 三\n")
	assert.Contains(t, out, "第3章: 五\n")
	assert.NotContains(t, out, "第4章")
	assert.Equal(t, 3, strings.Count(out, strings.Repeat("=", 50)))
}

func TestFromLinks(t *testing.T) {
	links := []providers.Chapter{{Title: "a", URL: "u1"}, {Title: "b", URL: "u2"}}
	chs := FromLinks(links)

	require.Len(t, chs, 2)
	assert.Equal(t, "a", chs[0].Title)
	assert.Equal(t, "u2", chs[1].URL)
	assert.Empty(t, chs[0].Content)
}
