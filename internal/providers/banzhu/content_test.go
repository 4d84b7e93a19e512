package banzhu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContent(t *testing.T) {
	doc := mustDoc(t, `<div id="nr1">
  <font color="blue">本章未完，请点击下一页继续阅读</font>
  萧炎，斗之力，三段。
  <center class="chapterPages"><span class="curr">1</span><a href="2.html">2</a></center>
  <font color="red">kept</font>
</div>`)

	text, ok := ExtractContent(doc)
	assert.True(t, ok)
	assert.NotContains(t, text, "本章未完")
	assert.NotContains(t, text, "2")
	assert.Contains(t, text, "萧炎，斗之力，三段。")
	assert.Contains(t, text, "kept")
	assert.Regexp(t, `^萧炎`, text)
	assert.Regexp(t, `kept\n\n$`, text)

	// the pager is still in the document for the walker
	assert.Equal(t, 1, doc.Find("center.chapterPages").Length())
}

func TestExtractContentMissing(t *testing.T) {
	text, ok := ExtractContent(mustDoc(t, `<div id="content">text</div>`))
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestExtractContentEmpty(t *testing.T) {
	text, ok := ExtractContent(mustDoc(t, `<div id="nr1">   </div>`))
	assert.True(t, ok)
	assert.Equal(t, "\n\n", text)
}
