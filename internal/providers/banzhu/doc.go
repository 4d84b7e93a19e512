// Package banzhu implements a providers.Scraper for 第一版主-style novel
// sites. The markup is fixed: the chapter list is the second
// ".mod.block.update.chapter-list" container, chapter text lives in #nr1
// and long chapters are split into sub-pages linked from a
// "center.chapterPages" bar.
package banzhu
