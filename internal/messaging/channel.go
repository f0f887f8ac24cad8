package messaging

import "fmt"

// PlayerChannel maps character ids onto NATS subjects, one subject per
// character. It is the delivery side of every room broadcast, shout and
// death notice; sessions subscribe to their active character's subject.
type PlayerChannel struct {
	server *NatsServer
}

func NewPlayerChannel(server *NatsServer) *PlayerChannel {
	return &PlayerChannel{server: server}
}

func (c *PlayerChannel) PublishToCharacter(charId string, message string) error {
	return c.server.Publish(subjectFor(charId), []byte(message))
}

func (c *PlayerChannel) SubscribeCharacter(charId string, handler func(message string)) (func(), error) {
	return c.server.Subscribe(subjectFor(charId), func(data []byte) {
		handler(string(data))
	})
}

func subjectFor(charId string) string {
	return fmt.Sprintf("player-%s", charId)
}
