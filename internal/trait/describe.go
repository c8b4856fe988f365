package trait

// Info describes one type of the alphabet for display.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Examples    []string `json:"examples"`
}

var descriptions = map[Type]Info{
	Realistic: {
		Name:        "现实型",
		Description: "喜欢动手操作、机械维修、户外工作，擅长使用工具和设备。",
		Traits:      []string{"实际", "稳重", "踏实", "动手能力强"},
		Examples:    []string{"机械工程师", "电工", "建筑师", "驾驶员"},
	},
	Investigative: {
		Name:        "研究型",
		Description: "喜欢思考分析、科学研究、解决问题，擅长理论和抽象思维。",
		Traits:      []string{"好奇", "理性", "独立", "分析能力强"},
		Examples:    []string{"数据分析师", "研究员", "程序员", "科学家"},
	},
	Artistic: {
		Name:        "艺术型",
		Description: "喜欢创意表达、艺术创作、自由发挥，富有想象力和创造力。",
		Traits:      []string{"创意", "感性", "表达力强", "追求个性"},
		Examples:    []string{"设计师", "作家", "音乐人", "摄影师"},
	},
	Social: {
		Name:        "社会型",
		Description: "喜欢帮助他人、沟通协作、教育培训，擅长人际交往。",
		Traits:      []string{"友善", "乐于助人", "善于沟通", "有同理心"},
		Examples:    []string{"教师", "护士", "心理咨询师", "人力资源"},
	},
	Enterprising: {
		Name:        "企业型",
		Description: "喜欢领导管理、说服他人、达成目标，擅长决策和冒险。",
		Traits:      []string{"自信", "有野心", "善于说服", "领导力强"},
		Examples:    []string{"销售经理", "创业者", "项目经理", "市场总监"},
	},
	Conventional: {
		Name:        "常规型",
		Description: "喜欢数据处理、规范流程、组织整理，擅长执行和细节。",
		Traits:      []string{"细心", "有条理", "执行力强", "稳重"},
		Examples:    []string{"会计", "行政助理", "档案管理员", "数据录入员"},
	},
}

// Describe returns display information for t.
func Describe(t Type) (Info, bool) {
	info, ok := descriptions[t]
	return info, ok
}
