package config

// Коды посещаемости (закрытое перечисление)
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceExcused = "EXCUSED"
)

// NoCategory - значение-сентинел для года рождения вне всех правил
const NoCategory = "No Category"

// CategoryFor возвращает категорию по году рождения.
// Чистая функция над правилами из конфигурации: годы по построению
// не пересекаются, поэтому порядок обхода не важен.
func CategoryFor(birthYear int) string {
	for cat, years := range AppConfig.Categories {
		for _, y := range years {
			if y == birthYear {
				return cat
			}
		}
	}
	return NoCategory
}

// ValidAttendanceCode проверяет код посещаемости по закрытому перечислению
func ValidAttendanceCode(code string) bool {
	for _, c := range AppConfig.AttendanceCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ValidAthleteFlag проверяет флаг атлета по легенде
func ValidAthleteFlag(flag string) bool {
	_, ok := AppConfig.AthleteFlags[flag]
	return ok
}

// ValidTrainingFlag проверяет флаг общей оценки тренировки по легенде
func ValidTrainingFlag(flag string) bool {
	_, ok := AppConfig.TrainingFlags[flag]
	return ok
}

// ValidTrainingType проверяет, что тип тренировки входит в признанный список
func ValidTrainingType(name string) bool {
	for _, t := range AppConfig.TrainingTypes {
		if t == name {
			return true
		}
	}
	return false
}

func defaultCategories() map[string][]int {
	return map[string][]int{
		"Sub 17": {2009, 2010},
		"Sub 15": {2011},
		"Sub 14": {2012},
		"Sub 13": {2013},
		"Sub 12": {2014},
		"Sub 11": {2015},
		"Sub 10": {2016},
		"Sub 9":  {2017},
	}
}

func defaultTrainingTypes() []string {
	return []string{
		"Físico", "Técnico", "Tático", "Vídeo",
		"Coletivo", "Amistoso", "Paulista", "Academia",
		"Teste Físico", "Palestra", "Regenerativo",
	}
}

func defaultAthleteFlags() map[string]string {
	return map[string]string{
		"1":  "Abaixo (1)",
		"2":  "Na Média (2)",
		"3":  "Se Destacou (3)",
		"F":  "Faltou",
		"DM": "Lesão",
	}
}

func defaultTrainingFlags() map[string]string {
	return map[string]string{
		"1":  "Treino Ruim (1)",
		"2":  "Na Média (2)",
		"3":  "Treino Bom (3)",
		"FO": "Folga",
		"AM": "Amistoso",
		"CH": "Choveu",
	}
}
