package canopy

import "github.com/hajimehoshi/ebiten/v2"

// Shortcut binds a key plus an exact modifier set to an action.
type Shortcut struct {
	Name      string
	Key       ebiten.Key
	Modifiers KeyModifiers
	Action    func()

	// Enabled gates the shortcut without unregistering it.
	Enabled bool
}

// NewShortcut creates an enabled shortcut.
func NewShortcut(name string, key ebiten.Key, mods KeyModifiers, action func()) *Shortcut {
	return &Shortcut{Name: name, Key: key, Modifiers: mods, Action: action, Enabled: true}
}

// ShortcutSet holds the scene's keyboard shortcuts. Each frame, every
// enabled shortcut whose key was just pressed with exactly its modifiers
// fires once. Registration order decides firing order.
type ShortcutSet struct {
	list []*Shortcut
}

// Register adds sc. A shortcut that is already registered, or one with the
// same key and modifiers as a registered shortcut, is ignored.
func (ss *ShortcutSet) Register(sc *Shortcut) {
	for _, x := range ss.list {
		if x == sc || (x.Key == sc.Key && x.Modifiers == sc.Modifiers) {
			logDebugf("ShortcutSet.Register", "shortcut %q collides with %q, ignoring", sc.Name, x.Name)
			return
		}
	}
	ss.list = append(ss.list, sc)
}

// Unregister removes sc. No-op if it is not registered.
func (ss *ShortcutSet) Unregister(sc *Shortcut) {
	for i, x := range ss.list {
		if x == sc {
			copy(ss.list[i:], ss.list[i+1:])
			ss.list[len(ss.list)-1] = nil
			ss.list = ss.list[:len(ss.list)-1]
			return
		}
	}
}

// Len returns the number of registered shortcuts.
func (ss *ShortcutSet) Len() int { return len(ss.list) }

// process fires matching shortcuts and returns how many ran without
// panicking.
func (ss *ShortcutSet) process(in InputSource, mods KeyModifiers) int {
	fired := 0
	for _, sc := range append([]*Shortcut(nil), ss.list...) {
		if !sc.Enabled || sc.Action == nil || sc.Modifiers != mods {
			continue
		}
		if !in.IsKeyJustPressed(sc.Key) {
			continue
		}
		if safeCallFor("Shortcut.Action", "shortcut "+sc.Name, sc.Action) {
			fired++
		}
	}
	return fired
}
