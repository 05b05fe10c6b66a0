package respond

type MessageRespond struct {
	Message string `json:"message"`
}
