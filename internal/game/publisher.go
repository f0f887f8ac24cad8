package game

// Publisher delivers an out-of-band message toward a character's session.
// Delivery is best-effort and fire-and-forget: callers log failures and move
// on, they never block a mutation on a slow or dead peer.
type Publisher interface {
	PublishToCharacter(charId string, message string) error
}

// Subscriber provides the ability to receive the messages published for a
// character. Sessions subscribe while a character is active and release the
// subscription on logout or disconnect.
type Subscriber interface {
	SubscribeCharacter(charId string, handler func(message string)) (unsubscribe func(), err error)
}
