package websocket

import (
	"encoding/json"

	"github.com/bp4sp4/NMS-System-sub000/internal/service"
)

// Publisher 把文书事件编码成 JSON 后定向推送
// 实现 service.EventPublisher
type Publisher struct {
	hub *Hub
}

// NewPublisher 创建事件发布器
func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

// PublishDocumentEvent 推送文书状态变更事件给相关用户
// 序列化失败只会丢弃事件, 不影响审批主流程
func (p *Publisher) PublishDocumentEvent(event *service.DocumentEvent, partyIDs ...string) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	seen := make(map[string]bool, len(partyIDs))
	for _, id := range partyIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		p.hub.SendToParty(id, payload)
	}
}
