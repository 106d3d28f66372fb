package shell

import "github.com/flickos/flick/internal/geom"

// QuickToggle is one row in the quick-settings toggle grid.
type QuickToggle struct {
	ID      string
	Name    string
	Icon    string
	Enabled bool
}

// DefaultToggles returns the six standard quick-settings toggles.
func DefaultToggles() []QuickToggle {
	return []QuickToggle{
		{"wifi", "WiFi", "W", true},
		{"bluetooth", "BT", "B", false},
		{"dnd", "DND", "D", false},
		{"flashlight", "Light", "L", false},
		{"rotation", "Rotate", "R", true},
		{"airplane", "Flight", "A", false},
	}
}

// NotificationUrgency ranks a notification's visual priority.
type NotificationUrgency int

const (
	UrgencyLow NotificationUrgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one entry in the notification store.
type Notification struct {
	ID        uint32
	AppName   string
	Summary   string
	Body      string
	Urgency   NotificationUrgency
	Timestamp int64
}

// NotificationStore holds pending notifications, newest first.
type NotificationStore struct {
	notifications []Notification
	nextID        uint32
}

// NewNotificationStore returns an empty store with IDs starting at 1.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{nextID: 1}
}

// Add appends a notification stamped with now (Unix seconds) and returns
// its assigned ID.
func (s *NotificationStore) Add(appName, summary, body string, now int64) uint32 {
	id := s.nextID
	s.nextID++
	s.notifications = append(s.notifications, Notification{
		ID: id, AppName: appName, Summary: summary, Body: body,
		Urgency: UrgencyNormal, Timestamp: now,
	})
	return id
}

// Remove drops the notification with the given ID, if present.
func (s *NotificationStore) Remove(id uint32) {
	out := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.notifications = out
}

// All returns a copy of the store's notifications, newest first.
func (s *NotificationStore) All() []Notification {
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Timestamp > out[i].Timestamp {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// SystemSnapshot is the subset of live system state the quick-settings
// panel reads when syncing toggles and sliders.
type SystemSnapshot struct {
	BatteryPercent   uint8
	BatteryCharging  bool
	WifiEnabled      bool
	WifiSSID         string
	BluetoothEnabled bool
	DndEnabled       bool
	RotationLocked   bool
	Brightness       float32
	Volume           uint8
	Muted            bool
}

// QuickSettingsPanel is the quick-settings view's interactive state.
type QuickSettingsPanel struct {
	screen geom.Size

	Toggles      []QuickToggle
	Brightness   float32
	Volume       uint8
	Muted        bool
	ScrollOffset float64

	BatteryPercent  uint8
	BatteryCharging bool
	WifiConnected   bool
	WifiSSID        string

	notifications *NotificationStore
}

// NewQuickSettingsPanel returns a panel with the default toggles and
// mid-range brightness/volume.
func NewQuickSettingsPanel(screen geom.Size, notifications *NotificationStore) *QuickSettingsPanel {
	return &QuickSettingsPanel{
		screen:        screen,
		Toggles:       DefaultToggles(),
		Brightness:    0.7,
		Volume:        50,
		notifications: notifications,
	}
}

// UpdateFromSystem syncs the panel's cached fields and toggle states from
// a live system snapshot, airplane mode derived as "neither radio on".
func (p *QuickSettingsPanel) UpdateFromSystem(s SystemSnapshot) {
	p.BatteryPercent = s.BatteryPercent
	p.BatteryCharging = s.BatteryCharging
	p.WifiConnected = s.WifiEnabled
	p.WifiSSID = s.WifiSSID

	for i := range p.Toggles {
		switch p.Toggles[i].ID {
		case "wifi":
			p.Toggles[i].Enabled = s.WifiEnabled
		case "bluetooth":
			p.Toggles[i].Enabled = s.BluetoothEnabled
		case "dnd":
			p.Toggles[i].Enabled = s.DndEnabled
		case "rotation":
			p.Toggles[i].Enabled = s.RotationLocked
		case "airplane":
			p.Toggles[i].Enabled = !s.WifiEnabled && !s.BluetoothEnabled
		}
	}

	p.Brightness = s.Brightness
	p.Volume = s.Volume
	p.Muted = s.Muted
}

const (
	qsToggleSize    = 72.0
	qsToggleSpacing = 16.0
	qsTogglesPerRow = 4
	qsRowSpacing    = 28.0
)

func (p *QuickSettingsPanel) toggleLayout() (gridStartX, gridY, toggleSize, toggleSpacing float64, perRow int) {
	gridWidth := float64(qsTogglesPerRow)*qsToggleSize + float64(qsTogglesPerRow-1)*qsToggleSpacing
	gridStartX = (float64(p.screen.W) - gridWidth) / 2
	gridY = 56.0 + 20.0 + 32.0 - p.ScrollOffset
	return gridStartX, gridY, qsToggleSize, qsToggleSpacing, qsTogglesPerRow
}

// HitTestToggle returns the index of the toggle under (x, y), if any.
func (p *QuickSettingsPanel) HitTestToggle(x, y float64) (int, bool) {
	gridStartX, gridY, size, spacing, perRow := p.toggleLayout()
	for i := range p.Toggles {
		col := i % perRow
		row := i / perRow
		tx := gridStartX + float64(col)*(size+spacing)
		ty := gridY + float64(row)*(size+qsRowSpacing)
		if x >= tx && x < tx+size && y >= ty && y < ty+size {
			return i, true
		}
	}
	return 0, false
}

func (p *QuickSettingsPanel) toggleRows() int {
	return (len(p.Toggles) + qsTogglesPerRow - 1) / qsTogglesPerRow
}

func (p *QuickSettingsPanel) brightnessY() float64 {
	_, gridY, size, _, _ := p.toggleLayout()
	return gridY + float64(p.toggleRows())*(size+qsRowSpacing) + 24.0
}

// HitTestBrightness returns the brightness value (0..1) for a tap at
// (x, y) on the brightness slider, if the tap lands on it.
func (p *QuickSettingsPanel) HitTestBrightness(x, y float64) (float32, bool) {
	const padding = 20.0
	sliderY := p.brightnessY() + 32.0
	const sliderHeight = 40.0
	sliderWidth := float64(p.screen.W) - padding*2

	if y >= sliderY && y < sliderY+sliderHeight && x >= padding && x < padding+sliderWidth {
		v := (x - padding) / sliderWidth
		return float32(clamp01(v)), true
	}
	return 0, false
}

// HitTestVolume returns the volume value (0..100) for a tap at (x, y) on
// the volume slider, if the tap lands on it.
func (p *QuickSettingsPanel) HitTestVolume(x, y float64) (uint8, bool) {
	const padding = 20.0
	volumeY := p.brightnessY() + 90.0
	sliderY := volumeY + 32.0
	const sliderHeight = 40.0
	sliderWidth := float64(p.screen.W) - padding*2

	if y >= sliderY && y < sliderY+sliderHeight && x >= padding && x < padding+sliderWidth {
		v := clamp01((x-padding)/sliderWidth) * 100
		return uint8(v), true
	}
	return 0, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Toggle flips the toggle at index and returns its ID for the caller to
// act on against the real system facade.
func (p *QuickSettingsPanel) Toggle(index int) (string, bool) {
	if index < 0 || index >= len(p.Toggles) {
		return "", false
	}
	p.Toggles[index].Enabled = !p.Toggles[index].Enabled
	return p.Toggles[index].ID, true
}

// SetBrightness clamps and applies a new brightness value.
func (p *QuickSettingsPanel) SetBrightness(v float32) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.Brightness = v
}

// SetVolume clamps to [0, 100] and unmutes, matching the rule that
// adjusting the slider always unmutes.
func (p *QuickSettingsPanel) SetVolume(v uint8) {
	if v > 100 {
		v = 100
	}
	p.Volume = v
	p.Muted = false
}

// ContentHeight is the total scrollable content height, including the
// notification list (at least one notification's worth of space even
// when empty, to match the original's max(1, count) rule).
func (p *QuickSettingsPanel) ContentHeight() float64 {
	rows := p.toggleRows()
	notificationCount := 0
	if p.notifications != nil {
		notificationCount = len(p.notifications.All())
	}
	if notificationCount < 1 {
		notificationCount = 1
	}
	const cardHeight, cardSpacing = 80.0, 12.0
	return 56.0 + 20.0 + 32.0 +
		float64(rows)*(qsToggleSize+qsRowSpacing) +
		24.0 + 32.0 + 40.0 +
		90.0 +
		32.0 +
		float64(notificationCount)*(cardHeight+cardSpacing) +
		100.0
}

// Scroll applies delta to the scroll offset, clamped to [0, maxScroll].
func (p *QuickSettingsPanel) Scroll(delta float64) {
	maxScroll := p.ContentHeight() - float64(p.screen.H)
	if maxScroll < 0 {
		maxScroll = 0
	}
	next := p.ScrollOffset + delta
	if next < 0 {
		next = 0
	}
	if next > maxScroll {
		next = maxScroll
	}
	p.ScrollOffset = next
}
