// Package reference holds the immutable catalogs shipped with the
// application: standard developmental milestones, the recommended vaccination
// schedule and growth standard bands. The data is a simplified extract of the
// WHO / CDC recommendations and the Taiwanese national vaccination program.
package reference

import "github.com/terraincognita07/sprout/internal/models"

// MilestoneEntry is one standard milestone. Code is the stable identifier
// saved rows link to; Name is the display name and must stay unique within
// the catalog because the mark-by-name API resolves through it.
type MilestoneEntry struct {
	Code                string
	Name                string
	Category            string
	AgeMonthRecommended int
	Description         string
}

var standardMilestones = []MilestoneEntry{
	{Code: "motor.lift-head", Name: "抬頭", Category: models.CategoryMotor, AgeMonthRecommended: 1, Description: "趴著時能抬頭並保持短暫時間"},
	{Code: "motor.roll-over", Name: "翻身", Category: models.CategoryMotor, AgeMonthRecommended: 4, Description: "能從仰臥翻到俯臥，或從俯臥翻到仰臥"},
	{Code: "motor.sit-up", Name: "坐起", Category: models.CategoryMotor, AgeMonthRecommended: 6, Description: "可以在沒有支撐的情況下坐直"},
	{Code: "motor.crawl", Name: "爬行", Category: models.CategoryMotor, AgeMonthRecommended: 9, Description: "能用手和膝蓋爬行移動"},
	{Code: "motor.stand", Name: "站立", Category: models.CategoryMotor, AgeMonthRecommended: 10, Description: "可以扶著物體站立"},
	{Code: "motor.walk", Name: "獨立行走", Category: models.CategoryMotor, AgeMonthRecommended: 12, Description: "可以獨立行走幾步而不需要支撐"},
	{Code: "motor.run", Name: "跑步", Category: models.CategoryMotor, AgeMonthRecommended: 18, Description: "能夠穩定地跑步"},
	{Code: "motor.kick-ball", Name: "踢球", Category: models.CategoryMotor, AgeMonthRecommended: 20, Description: "能夠踢球前進"},
	{Code: "motor.jump", Name: "跳躍", Category: models.CategoryMotor, AgeMonthRecommended: 24, Description: "能夠原地跳躍"},
	{Code: "motor.stairs", Name: "上下樓梯", Category: models.CategoryMotor, AgeMonthRecommended: 30, Description: "能夠扶著扶手上下樓梯，每階一腳"},
	{Code: "motor.tricycle", Name: "騎三輪車", Category: models.CategoryMotor, AgeMonthRecommended: 36, Description: "能夠踩踏三輪車前進"},

	{Code: "language.coo", Name: "發出咕咕聲", Category: models.CategoryLanguage, AgeMonthRecommended: 2, Description: "能發出簡單的咕咕聲或元音聲"},
	{Code: "language.babble", Name: "牙牙學語", Category: models.CategoryLanguage, AgeMonthRecommended: 6, Description: "發出連續的聲音組合，如\"ba-ba\"或\"ma-ma\""},
	{Code: "language.understand", Name: "理解簡單指令", Category: models.CategoryLanguage, AgeMonthRecommended: 9, Description: "對自己的名字有反應，理解\"不\"的含義"},
	{Code: "language.first-word", Name: "說第一個詞", Category: models.CategoryLanguage, AgeMonthRecommended: 12, Description: "能說一兩個單詞，如\"媽媽\"、\"爸爸\""},
	{Code: "language.vocabulary", Name: "詞彙增加", Category: models.CategoryLanguage, AgeMonthRecommended: 18, Description: "能說至少10個單詞"},
	{Code: "language.two-words", Name: "兩詞組合", Category: models.CategoryLanguage, AgeMonthRecommended: 21, Description: "能組合兩個詞，如\"要喝\"、\"媽媽來\""},
	{Code: "language.sentence", Name: "簡單句子", Category: models.CategoryLanguage, AgeMonthRecommended: 24, Description: "能說簡單的短句，如\"我要喝水\""},
	{Code: "language.full-name", Name: "說出全名", Category: models.CategoryLanguage, AgeMonthRecommended: 30, Description: "能說出自己的全名"},
	{Code: "language.complex", Name: "複雜句子", Category: models.CategoryLanguage, AgeMonthRecommended: 36, Description: "使用複雜句子，包含\"和\"、\"因為\"等連接詞"},

	{Code: "social.smile", Name: "社交性微笑", Category: models.CategorySocial, AgeMonthRecommended: 2, Description: "對人微笑回應"},
	{Code: "social.recognize", Name: "認識親人", Category: models.CategorySocial, AgeMonthRecommended: 4, Description: "能分辨熟悉的人和陌生人"},
	{Code: "social.stranger-anxiety", Name: "陌生人焦慮", Category: models.CategorySocial, AgeMonthRecommended: 8, Description: "對陌生人表現出不安或害怕"},
	{Code: "social.peekaboo", Name: "玩躲貓貓", Category: models.CategorySocial, AgeMonthRecommended: 9, Description: "參與互動遊戲如躲貓貓"},
	{Code: "social.imitate", Name: "模仿動作", Category: models.CategorySocial, AgeMonthRecommended: 10, Description: "模仿簡單的動作或表情"},
	{Code: "social.emotions", Name: "表達情感", Category: models.CategorySocial, AgeMonthRecommended: 15, Description: "能清楚表達喜怒哀樂等基本情感"},
	{Code: "social.parallel-play", Name: "平行遊戲", Category: models.CategorySocial, AgeMonthRecommended: 18, Description: "在其他孩子旁邊玩耍，但不一定互動"},
	{Code: "social.empathy", Name: "表現同理心", Category: models.CategorySocial, AgeMonthRecommended: 24, Description: "對他人情緒表現出關心"},
	{Code: "social.take-turns", Name: "輪流遊戲", Category: models.CategorySocial, AgeMonthRecommended: 30, Description: "能在遊戲中輪流，展現基本合作能力"},
	{Code: "social.pretend-play", Name: "想像性遊戲", Category: models.CategorySocial, AgeMonthRecommended: 36, Description: "參與角色扮演等想像性遊戲"},

	{Code: "cognitive.tracking", Name: "視覺追蹤", Category: models.CategoryCognitive, AgeMonthRecommended: 1, Description: "能用眼睛追蹤移動的物體"},
	{Code: "cognitive.grasp", Name: "抓握玩具", Category: models.CategoryCognitive, AgeMonthRecommended: 3, Description: "能伸手抓握感興趣的玩具"},
	{Code: "cognitive.permanence", Name: "物體永續性", Category: models.CategoryCognitive, AgeMonthRecommended: 8, Description: "理解被遮蓋的物體仍然存在"},
	{Code: "cognitive.cause-effect", Name: "因果關係", Category: models.CategoryCognitive, AgeMonthRecommended: 10, Description: "理解簡單的因果關係，如按鈕會發出聲音"},
	{Code: "cognitive.functional-use", Name: "功能性使用", Category: models.CategoryCognitive, AgeMonthRecommended: 12, Description: "按照物品的功能正確使用，如杯子用來喝水"},
	{Code: "cognitive.body-parts", Name: "指認身體部位", Category: models.CategoryCognitive, AgeMonthRecommended: 15, Description: "能指認至少三個身體部位"},
	{Code: "cognitive.puzzle", Name: "完成簡單拼圖", Category: models.CategoryCognitive, AgeMonthRecommended: 18, Description: "能完成2-3片的簡單拼圖"},
	{Code: "cognitive.sorting", Name: "分類物品", Category: models.CategoryCognitive, AgeMonthRecommended: 24, Description: "能按照形狀或顏色分類物品"},
	{Code: "cognitive.count-three", Name: "計數到三", Category: models.CategoryCognitive, AgeMonthRecommended: 30, Description: "能正確數到3，理解數量概念"},
	{Code: "cognitive.colors", Name: "辨認顏色", Category: models.CategoryCognitive, AgeMonthRecommended: 36, Description: "能辨認並命名至少四種基本顏色"},
}

// StandardMilestones returns a copy of the catalog so callers cannot mutate it.
func StandardMilestones() []MilestoneEntry {
	entries := make([]MilestoneEntry, len(standardMilestones))
	copy(entries, standardMilestones)
	return entries
}

func MilestoneByCode(code string) (MilestoneEntry, bool) {
	for _, entry := range standardMilestones {
		if entry.Code == code {
			return entry, true
		}
	}
	return MilestoneEntry{}, false
}

// MilestoneByName matches on the exact display name, case-sensitive. There is
// no fuzzy matching.
func MilestoneByName(name string) (MilestoneEntry, bool) {
	for _, entry := range standardMilestones {
		if entry.Name == name {
			return entry, true
		}
	}
	return MilestoneEntry{}, false
}
