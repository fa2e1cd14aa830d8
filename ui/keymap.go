package ui

import "folio/config"

// keymap resolves action names to the key strings the user configured.
// Views match tea.KeyMsg.String() against these.
type keymap struct {
	kb *config.KeyBindingsConfig
}

func newKeymap(kb *config.KeyBindingsConfig) keymap {
	return keymap{kb: kb}
}

func (k keymap) get(action string) string {
	return k.kb.GetActionKey(action)
}

// display returns the human-readable form for footers and help
func (k keymap) display(action string) string {
	return k.kb.DisplayActionKey(action)
}
