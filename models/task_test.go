package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionOf(t *testing.T) {
	withBlock := "---\nEstTime: 30\nUrgency: 5\nImportance: 5\n---\n写周报"
	assert.Equal(t, "写周报", DescriptionOf(withBlock))

	noBlock := "  没有属性块的正文  "
	assert.Equal(t, "没有属性块的正文", DescriptionOf(noBlock))
}

// 描述自身包含 "---" 时只认属性块的闭合标记，后面的内容原样保留
func TestDescriptionOfKeepsMarkerInsideDescription(t *testing.T) {
	body := "---\nEstTime: 30\nUrgency: 5\nImportance: 5\n---\n会议纪要\n---\n补充说明"
	assert.Equal(t, "会议纪要\n---\n补充说明", DescriptionOf(body))
}

// 只有一个孤立标记时不视为属性块，正文整体就是描述
func TestDescriptionOfUnpairedMarker(t *testing.T) {
	body := "待办清单 --- 周五前完成"
	assert.Equal(t, "待办清单 --- 周五前完成", DescriptionOf(body))
}
