package chapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"斗破苍穹最新章节", "斗破苍穹"},
		{"斗破苍穹新书作品", "斗破苍穹"},
		{"斗破苍穹_小说", "斗破苍穹"},
		{"某某 - 第一版主网", "某某"},
		{"剑来 | 烽火戏诸侯 | 完整小说", "剑来烽火戏诸侯"},
		{"*****书名*****", "书名"},
		{"  多   空格  ", "多 空格"},
		{"书名　　作者", "书名 作者"},
		{"AB作品小说", "AB"},
		{"小说", "小说"},
		{"", ""},
		{"Plain Title", "Plain Title"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.in))
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"斗破苍穹最新章节", "斗破苍穹.txt"},
		{"书名 作者", "书名_作者.txt"},
		{`a:b?c`, "a_b_c.txt"},
		{`x/y\z<1>"2"`, "x_y_z_1__2_.txt"},
		{"", DefaultName + ".txt"},
		{"小说", "小说.txt"},
		{"my_book.txt", "my_book.txt"},
		{"a b.txt", "a_b.txt.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.in))
		})
	}
}

var sanitizerInputs = []string{
	"",
	" ",
	"小说",
	"AB作品小说",
	"a b",
	"a_b",
	"a - b | c",
	"x/y:z*?\"<>|",
	"名字.txt",
	"a b.txt",
	"\t书　名\n",
	"*****",
	"*****小说*****最新章节",
	"第一版主网",
	"___",
}

func TestSanitizerIsIdempotent(t *testing.T) {
	for _, in := range sanitizerInputs {
		once := CleanTitle(in)
		assert.Equal(t, once, CleanTitle(once), "CleanTitle(%q)", in)

		name := FileName(in)
		assert.Equal(t, name, FileName(name), "FileName(%q)", in)
	}
}

func TestFileNameHasNoForbiddenCharacters(t *testing.T) {
	for _, in := range sanitizerInputs {
		name := FileName(in)
		assert.False(t, strings.ContainsAny(name, `\/:*?"<>|`), "FileName(%q) = %q", in, name)
		assert.False(t, strings.ContainsFunc(name, isSpace), "FileName(%q) = %q", in, name)
		assert.True(t, strings.HasSuffix(name, Ext))
	}
}
