package memberservice

// Member профиль члена клуба из MemberService
type Member struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Class string `json:"memberClass"` // например "full", "weekday", "junior", "senior"
}

// membersResponse ответ батч-эндпоинта MemberService
type membersResponse struct {
	Members []Member `json:"members"`
}
