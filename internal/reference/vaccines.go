package reference

// VaccineEntry is one dose of the recommended vaccination schedule.
// Recorded vaccine health records are matched against Name by exact string
// comparison, so the names here are the canonical spelling.
type VaccineEntry struct {
	AgeMonths   int
	Name        string
	Description string
}

var vaccineSchedule = []VaccineEntry{
	{AgeMonths: 0, Name: "B型肝炎疫苗第1劑", Description: "出生24小時內"},
	{AgeMonths: 1, Name: "B型肝炎疫苗第2劑", Description: "出生滿1個月"},
	{AgeMonths: 2, Name: "13價結合型肺炎鏈球菌疫苗第1劑", Description: "出生滿2個月"},
	{AgeMonths: 2, Name: "六合一疫苗第1劑", Description: "白喉、破傷風、非細胞性百日咳、b型嗜血桿菌、不活化小兒麻痺、B型肝炎"},
	{AgeMonths: 4, Name: "13價結合型肺炎鏈球菌疫苗第2劑", Description: "出生滿4個月"},
	{AgeMonths: 4, Name: "六合一疫苗第2劑", Description: "白喉、破傷風、非細胞性百日咳、b型嗜血桿菌、不活化小兒麻痺、B型肝炎"},
	{AgeMonths: 6, Name: "六合一疫苗第3劑", Description: "白喉、破傷風、非細胞性百日咳、b型嗜血桿菌、不活化小兒麻痺、B型肝炎"},
	{AgeMonths: 6, Name: "流感疫苗", Description: "每年接種"},
	{AgeMonths: 12, Name: "水痘疫苗", Description: "出生滿12個月"},
	{AgeMonths: 12, Name: "MMR疫苗第1劑", Description: "麻疹、腮腺炎、德國麻疹混合疫苗"},
	{AgeMonths: 12, Name: "13價結合型肺炎鏈球菌疫苗第3劑", Description: "出生滿12-15個月"},
	{AgeMonths: 15, Name: "日本腦炎疫苗第1劑", Description: "出生滿15個月"},
	{AgeMonths: 18, Name: "六合一疫苗第4劑", Description: "白喉、破傷風、非細胞性百日咳、b型嗜血桿菌、不活化小兒麻痺、B型肝炎"},
	{AgeMonths: 24, Name: "A型肝炎疫苗", Description: "出生滿12-24個月"},
	{AgeMonths: 27, Name: "日本腦炎疫苗第2劑", Description: "第1劑接種滿12個月"},
	{AgeMonths: 36, Name: "日本腦炎疫苗第3劑", Description: "第2劑接種滿12個月"},
	{AgeMonths: 60, Name: "MMR疫苗第2劑", Description: "麻疹、腮腺炎、德國麻疹混合疫苗，國小入學前"},
	{AgeMonths: 60, Name: "DTaP-IPV疫苗", Description: "白喉、破傷風、非細胞性百日咳、不活化小兒麻痺，國小入學前"},
}

// VaccineSchedule returns a copy of the schedule, ordered by recommended age.
func VaccineSchedule() []VaccineEntry {
	entries := make([]VaccineEntry, len(vaccineSchedule))
	copy(entries, vaccineSchedule)
	return entries
}
