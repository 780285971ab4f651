package survey

// Kind is a closed enumeration of question input kinds. Every walker
// operation switches over it exhaustively.
type Kind int

const (
	FreeText Kind = iota
	SingleChoice
	MultiSelect
	Phone
)

func (k Kind) String() string {
	switch k {
	case FreeText:
		return "free_text"
	case SingleChoice:
		return "single_choice"
	case MultiSelect:
		return "multi_select"
	case Phone:
		return "phone"
	}
	return "unknown"
}

// QuestionSpec describes one step of the schedule. Prompt is an i18n key,
// not display text. Options are present for SingleChoice and MultiSelect.
type QuestionSpec struct {
	Key     string
	Prompt  string
	Kind    Kind
	Options []string
}

// Features are the multi-select option labels. Stored verbatim as answers,
// so they are data, not localized text.
var Features = []string{
	"Онлайн-оплата (Click/Payme)",
	"Рейтинг клиентов (скоринг)",
	"Аналитика и отчёты",
	"Админ-панель в Telegram",
	"API/1C интеграции",
	"Видимость в агрегаторе (витрина)",
}

// DefaultSchedule is the fixed question order presented to every user.
// The answer columns of storage.Response follow the same order.
func DefaultSchedule() []QuestionSpec {
	return []QuestionSpec{
		{Key: "company", Prompt: "q_company", Kind: FreeText},
		{Key: "city", Prompt: "q_city", Kind: FreeText},
		{Key: "fleet_size", Prompt: "q_fleet_size", Kind: FreeText},
		{Key: "lead_channels", Prompt: "q_lead_channels", Kind: FreeText},
		{Key: "features", Prompt: "q_features", Kind: MultiSelect, Options: Features},
		{Key: "pilot_interest", Prompt: "q_pilot_interest", Kind: SingleChoice, Options: []string{"Да", "Нет"}},
		{Key: "contact_name", Prompt: "q_contact_name", Kind: FreeText},
		{Key: "contact_phone", Prompt: "q_contact_phone", Kind: Phone},
	}
}
