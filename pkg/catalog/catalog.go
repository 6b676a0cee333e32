// Package catalog holds the static book catalog and the pure search/filter
// logic over it. The data is a read-only snapshot with process lifetime;
// remaining slot counts are display state, not inventory the client mutates.
package catalog

// Category partitions the catalog.
type Category string

const (
	CategoryTech       Category = "tech"
	CategoryDesign     Category = "design"
	CategoryLiterature Category = "literature"
)

// CategoryInfo carries the display label and description of a category.
type CategoryInfo struct {
	Label string   `json:"label"`
	Value Category `json:"value"`
	Desc  string   `json:"desc"`
}

// Book is one reservable catalog entry.
type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Category Category `json:"category"`
	Slots    int      `json:"slots"`
	Desc     string   `json:"desc"`
}

// Reservable reports whether the entry has pickup slots left.
func (b Book) Reservable() bool {
	return b.Slots > 0
}

var categories = []CategoryInfo{
	{Label: "技术前沿", Value: CategoryTech, Desc: "编程 · 数据 · AI"},
	{Label: "设计创意", Value: CategoryDesign, Desc: "产品 · 视觉 · 体验"},
	{Label: "文学人文", Value: CategoryLiterature, Desc: "小说 · 随笔 · 传记"},
}

var bookStock = []Book{
	{
		ID:       "b-1",
		Title:    "深入理解 TypeScript",
		Author:   "terr",
		Category: CategoryTech,
		Slots:    3,
		Desc:     "覆盖 TS 类型系统、工程配置与大型项目最佳实践。",
	},
	{
		ID:       "b-2",
		Title:    "React 状态管理模式解析",
		Author:   "NutUI 团队",
		Category: CategoryTech,
		Slots:    5,
		Desc:     "对比 Redux、Recoil、Zustand 等方案的业务实战选型。",
	},
	{
		ID:       "b-3",
		Title:    "以用户为中心的设计",
		Author:   "Alan Cooper",
		Category: CategoryDesign,
		Slots:    2,
		Desc:     "交互设计经典著作，详解目标导向设计方法论。",
	},
	{
		ID:       "b-4",
		Title:    "字体设计原理",
		Author:   "田中一光",
		Category: CategoryDesign,
		Slots:    4,
		Desc:     "梳理中日韩字体结构，并附 120 例临摹练习。",
	},
	{
		ID:       "b-5",
		Title:    "岛上书店",
		Author:   "加布瑞埃拉·泽文",
		Category: CategoryLiterature,
		Slots:    1,
		Desc:     "讲述阅读如何疗愈生活，适合周末慢读。",
	},
	{
		ID:       "b-6",
		Title:    "人类群星闪耀时",
		Author:   "斯蒂芬·茨威格",
		Category: CategoryLiterature,
		Slots:    6,
		Desc:     "14 篇短篇史传，记录改变人类进程的瞬间。",
	},
}

// Categories returns the static category list.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// CategoryDesc returns the description for a category, empty when unknown.
func CategoryDesc(c Category) string {
	for _, info := range categories {
		if info.Value == c {
			return info.Desc
		}
	}
	return ""
}

// Books returns the static catalog in its canonical order.
func Books() []Book {
	out := make([]Book, len(bookStock))
	copy(out, bookStock)
	return out
}
