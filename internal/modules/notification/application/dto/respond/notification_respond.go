package respond

// BroadcastRespond 成功投递的通道数
type BroadcastRespond struct {
	Delivered int `json:"delivered"`
}
