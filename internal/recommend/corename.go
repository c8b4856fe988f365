package recommend

import "strings"

// coreKeywords groups job titles into coarse categories. Order matters: the first keyword
// contained in a title wins, so earlier entries shadow overlapping later ones.
var coreKeywords = []string{
	"数据分析", "数据挖掘", "数据开发", "数据仓库", "数据工程",
	"算法", "机器学习", "深度学习", "人工智能", "AI",
	"产品经理", "产品运营", "产品助理",
	"运营", "用户运营", "内容运营", "活动运营",
	"市场", "营销", "推广", "投放", "广告",
	"销售", "商务", "渠道", "客户经理",
	"前端", "后端", "全栈", "移动开发", "测试",
	"UI", "UX", "交互设计", "视觉设计", "平面设计",
	"人力资源", "HR", "招聘", "培训", "行政",
	"财务", "会计", "出纳", "审计",
	"客服", "售后", "技术支持",
	"采购", "供应链", "物流",
	"法务", "律师", "合规",
	"咨询", "顾问", "分析师",
}

const corePrefixLength = 4

// CoreName returns the category label used to bound repetition of similar titles:
// the first matching keyword, or the first four characters of the title.
func CoreName(title string) string {
	for _, keyword := range coreKeywords {
		if strings.Contains(title, keyword) {
			return keyword
		}
	}

	runes := []rune(title)
	if len(runes) > corePrefixLength {
		runes = runes[:corePrefixLength]
	}
	return string(runes)
}
