package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeStartDraft     MessageType = "start_draft"
	MessageTypePickCard       MessageType = "pick_card"
	MessageTypeCloseDraft     MessageType = "close_draft"
	MessageTypeOpenPack       MessageType = "open_pack"
	MessageTypeResumePool     MessageType = "resume_pool"
	MessageTypeAddToDeck      MessageType = "add_to_deck"
	MessageTypeRemoveFromDeck MessageType = "remove_from_deck"
	MessageTypeAddLand        MessageType = "add_land"
	MessageTypeRemoveLand     MessageType = "remove_land"
	MessageTypeExportDeck     MessageType = "export_deck"
	MessageTypeStartPlaytest  MessageType = "start_playtest"
	MessageTypePlaytestAction MessageType = "playtest_action"

	// Server to client messages
	MessageTypeDraftState    MessageType = "draft_state"
	MessageTypePackContent   MessageType = "pack_content"
	MessageTypeDeckState     MessageType = "deck_state"
	MessageTypeDecklist      MessageType = "decklist"
	MessageTypePlaytestState MessageType = "playtest_state"
	MessageTypeError         MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeNoDraft        = "no_draft"
	ErrCodeInvalidPick    = "invalid_pick"
	ErrCodeNoPool         = "no_pool"
	ErrCodeInvalidCard    = "invalid_card"
	ErrCodeInvalidLand    = "invalid_land"
	ErrCodeNoPlaytest     = "no_playtest"
	ErrCodeInvalidAction  = "invalid_action"
	ErrCodeStorage        = "storage_error"
)
