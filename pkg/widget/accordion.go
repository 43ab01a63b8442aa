package widget

import "sort"

// ==================== 模式 ====================

// Mode 折叠面板展开模式
type Mode int

const (
	// ModeSingle 同时最多展开一个分区
	ModeSingle Mode = iota
	// ModeMultiple 各分区独立开合
	ModeMultiple
)

// ==================== Accordion 折叠面板状态机 ====================

// Accordion 折叠面板的展开状态
// 只管状态流转，不管渲染；状态只存在于进程内存，随组件生命周期重置
//
// Toggle 语义：
//   - multiple 模式：翻转该分区的开合
//   - single + collapsible：再点已展开的分区收起为全关，否则只保留该分区
//   - single 不可收起：永远恰好展开该分区，一旦有分区展开就回不到全关
type Accordion struct {
	mode        Mode
	collapsible bool
	open        map[string]struct{}
}

// New 创建折叠面板，初始全部收起
// collapsible 只在 single 模式下有意义
func New(mode Mode, collapsible bool) *Accordion {
	return &Accordion{
		mode:        mode,
		collapsible: collapsible,
		open:        make(map[string]struct{}),
	}
}

// Toggle 点击某个分区
func (a *Accordion) Toggle(section string) {
	switch a.mode {
	case ModeMultiple:
		if _, ok := a.open[section]; ok {
			delete(a.open, section)
		} else {
			a.open[section] = struct{}{}
		}
	case ModeSingle:
		_, isOpen := a.open[section]
		if isOpen && a.collapsible {
			a.open = make(map[string]struct{})
			return
		}
		a.open = map[string]struct{}{section: {}}
	}
}

// IsOpen 分区是否展开
func (a *Accordion) IsOpen(section string) bool {
	_, ok := a.open[section]
	return ok
}

// Open 当前展开的分区（字典序快照）
func (a *Accordion) Open() []string {
	sections := make([]string, 0, len(a.open))
	for s := range a.open {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}

// Reset 全部收起
func (a *Accordion) Reset() {
	a.open = make(map[string]struct{})
}
