package handler

import (
	"github.com/palemoky/mastermind-online/internal/protocol"
	"github.com/palemoky/mastermind-online/internal/types"
)

// sendErr 把错误作为 ERROR:<reason> 回复给发送者
func sendErr(c types.ClientInterface, err error) {
	c.Send(protocol.Format(protocol.MsgError, err.Error()))
}
