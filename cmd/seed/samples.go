package main

import "github.com/JaimeStill/promptflow/internal/prompts"

func placeholder(bg, fg, text string) *string {
	url := "https://via.placeholder.com/800x600/" + bg + "/" + fg + "?text=" + text
	return &url
}

var samples = []prompts.CreateCommand{
	{
		Model:       "GPT-4",
		Mode:        "Text Generation",
		Category:    "科技",
		Author:      "AI Researcher",
		Headline:    "智能代码审查助手",
		Description: "自动检测代码中的潜在问题和优化建议",
		PromptText:  "作为一个资深的代码审查专家，请帮我分析以下代码的质量，包括：1）潜在的bug和错误 2）性能优化建议 3）代码可读性改进 4）最佳实践建议。请提供详细的分析和具体的改进代码示例。",
		EffectImage: placeholder("4A90E2", "FFFFFF", "Code+Review+AI"),
	},
	{
		Model:       "DALL-E 3",
		Mode:        "Image Generation",
		Category:    "教育",
		Author:      "Education Designer",
		Headline:    "互动式科学插图生成器",
		Description: "为教育材料创建生动的科学概念可视化",
		PromptText:  "Create a detailed, colorful and educational illustration showing [scientific concept], designed for middle school students. The style should be engaging, clear, and scientifically accurate. Include labels and diagrams that make complex ideas easy to understand.",
		EffectImage: placeholder("50C878", "FFFFFF", "Science+Illustration"),
	},
	{
		Model:       "GPT-4",
		Mode:        "Text Generation",
		Category:    "健康",
		Author:      "Fitness Coach",
		Headline:    "个性化健身计划生成器",
		Description: "根据用户目标和身体状况制定专属训练方案",
		PromptText:  "作为专业健身教练，请根据以下信息为我制定一个为期8周的健身计划：目标：[增肌/减脂/塑形]，当前体重：[X]kg，身高：[Y]cm，每周可训练天数：[Z]天。请包括：1）详细的训练动作和组数 2）饮食建议 3）进度跟踪方法。",
		EffectImage: placeholder("FF6B6B", "FFFFFF", "Fitness+Plan"),
	},
	{
		Model:       "Midjourney",
		Mode:        "Image Generation",
		Category:    "运动",
		Author:      "Sports Designer",
		Headline:    "运动海报设计生成",
		Description: "创建激励人心的运动主题视觉作品",
		PromptText:  "A dynamic sports poster featuring [sport name], dramatic lighting, high contrast, energetic composition, professional athlete in action, stadium background, vibrant colors, motivational atmosphere, 8k quality, photorealistic --ar 2:3 --v 6",
		EffectImage: placeholder("FFD700", "000000", "Sports+Poster"),
	},
	{
		Model:       "Claude",
		Mode:        "Text Generation",
		Category:    "教育",
		Author:      "Language Teacher",
		Headline:    "语言学习对话伙伴",
		Description: "沉浸式语言练习助手，提供实时纠错",
		PromptText:  "你是一位耐心的[语言]老师。让我们进行日常对话练习，主题是[主题]。请用[语言]和我交谈，如果我犯错，请用中文温和地指出错误，解释正确用法，然后继续对话。请保持对话自然流畅。",
		EffectImage: placeholder("9B59B6", "FFFFFF", "Language+Learning"),
	},
	{
		Model:       "Stable Diffusion",
		Mode:        "Image Generation",
		Category:    "科技",
		Author:      "UI Designer",
		Headline:    "未来科技界面设计",
		Description: "生成具有未来感的用户界面概念",
		PromptText:  "Futuristic holographic user interface, sci-fi HUD design, glowing blue and cyan elements, transparent panels, advanced technology dashboard, clean minimalist style, high-tech aesthetics, 3D floating elements, dark background, octane render, 4k --ar 16:9",
		EffectImage: placeholder("00CED1", "000000", "Futuristic+UI"),
	},
}
