package core

import "fmt"

// IDPool hands out small non-zero ids and recycles released ones.
// Slot 0 is reserved so that a zero id always means "no object".
type IDPool struct {
	owners []interface{}
	live   int
}

func NewIDPool() *IDPool {
	return &IDPool{
		owners: make([]interface{}, 1, 100),
	}
}

// Acquire returns the lowest free id and records owner against it.
func (p *IDPool) Acquire(owner interface{}) uint32 {
	if owner == nil {
		owner = struct{}{}
	}
	length := uint32(len(p.owners))
	for i := uint32(1); i < length; i++ {
		// Existing free spot. Take it.
		if p.owners[i] == nil {
			p.owners[i] = owner
			p.live++
			return i
		}
	}

	// No existing free slots, push a new one. The id will be length.
	p.owners = append(p.owners, owner)
	p.live++
	return length
}

// Release makes id available again.
func (p *IDPool) Release(id uint32) error {
	if id == 0 {
		return fmt.Errorf("id_pool release: id 0 is reserved. Nothing was done")
	}
	length := uint32(len(p.owners))
	if id >= length {
		return fmt.Errorf("id_pool release: id '%d' out of range (max=%d). Nothing was done", id, length-1)
	}
	if p.owners[id] == nil {
		return fmt.Errorf("id_pool release: id '%d' is not in use. Nothing was done", id)
	}
	p.owners[id] = nil
	p.live--
	return nil
}

// Owner returns what was registered for id, if it is in use.
func (p *IDPool) Owner(id uint32) (interface{}, bool) {
	if id == 0 || id >= uint32(len(p.owners)) || p.owners[id] == nil {
		return nil, false
	}
	return p.owners[id], true
}

// Live is the number of ids currently handed out.
func (p *IDPool) Live() int {
	return p.live
}

// InUse lists the handed out ids in ascending order.
func (p *IDPool) InUse() []uint32 {
	ids := make([]uint32, 0, p.live)
	for i := 1; i < len(p.owners); i++ {
		if p.owners[i] != nil {
			ids = append(ids, uint32(i))
		}
	}
	return ids
}
