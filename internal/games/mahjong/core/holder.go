package core

import "fmt"

// TileHolder is the bounded reserve of face-down tiles withheld at
// generation. It stores ids only; the Board owns the tiles themselves.
type TileHolder struct {
	capacity int
	ids      []TileID
	visible  bool
	pulse    float64
}

// NewTileHolder creates an empty reserve with capacity k.
func NewTileHolder(k int) *TileHolder {
	return &TileHolder{capacity: max(k, 0)}
}

// Reset empties the reserve and fixes a new capacity for the session.
func (h *TileHolder) Reset(k int) {
	h.capacity = max(k, 0)
	h.ids = h.ids[:0]
	h.pulse = 0
}

// Fill loads the reserve at generation time.
func (h *TileHolder) Fill(ids []TileID) error {
	if len(h.ids)+len(ids) > h.capacity {
		return fmt.Errorf("mahjong: reserve overflow: %d tiles for capacity %d", len(h.ids)+len(ids), h.capacity)
	}
	h.ids = append(h.ids, ids...)
	return nil
}

// Draw removes and returns the next reserved tile id.
func (h *TileHolder) Draw() (TileID, error) {
	if len(h.ids) == 0 {
		return NoTile, ErrReserveEmpty
	}
	id := h.ids[0]
	h.ids = h.ids[1:]
	return id, nil
}

// Clear drops every reserved id and keeps the capacity.
func (h *TileHolder) Clear() {
	h.ids = nil
}

// Len returns the number of tiles left in the reserve.
func (h *TileHolder) Len() int { return len(h.ids) }

// Capacity returns the reserve size fixed for this session.
func (h *TileHolder) Capacity() int { return h.capacity }

// Update advances the idle pulse used to draw attention to the tray.
func (h *TileHolder) Update(dt float64) {
	if len(h.ids) == 0 {
		h.pulse = 0
		return
	}
	h.pulse += dt
	if h.pulse >= 1 {
		h.pulse -= 1
	}
}

// Pulse returns the idle animation phase in [0, 1).
func (h *TileHolder) Pulse() float64 { return h.pulse }

func (h *TileHolder) SetVisible(v bool) { h.visible = v }

func (h *TileHolder) Visible() bool { return h.visible }
