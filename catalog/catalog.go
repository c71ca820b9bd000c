// Package catalog 加载并持有不可变的目录条目表。
//
// 目录是一次性快照：进程启动时加载，之后只读。行序有意义：
// 相似度检索的同距离并列按行序（先到先得）打破，保证确定性。
package catalog

// Catalog 是不可变的目录表。
//
// Title 是唯一键；若快照中出现重复 Title，按行序第一条生效
// （byTitle 先见先存，后续重复行仍在 items 中但无法按键查到）。
type Catalog struct {
	items   []Item
	byTitle map[string]int
}

// New 从条目序列构建目录。items 的顺序被保留。
func New(items []Item) *Catalog {
	c := &Catalog{
		items:   items,
		byTitle: make(map[string]int, len(items)),
	}
	for i, it := range items {
		if it.Title == "" {
			continue
		}
		if _, ok := c.byTitle[it.Title]; !ok {
			c.byTitle[it.Title] = i
		}
	}
	return c
}

// Len 返回目录条目数（含重复 Title 的行）。
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items 返回按行序排列的全部条目。调用方不得修改返回的切片。
func (c *Catalog) Items() []Item {
	return c.items
}

// Get 按 Title 查找条目（重复 Title 时返回第一条）。
func (c *Catalog) Get(title string) (Item, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Titles 返回按行序排列的全部 Title。
func (c *Catalog) Titles() []string {
	out := make([]string, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Title)
	}
	return out
}
