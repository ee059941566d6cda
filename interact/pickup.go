package interact

// Pickup is collected by the first interaction and ignores later ones.
type Pickup struct {
	Item        string
	Highlighted bool
	Collected   bool

	OnCollect func(item string)
}

func NewPickup(item string, onCollect func(item string)) *Pickup {
	return &Pickup{Item: item, OnCollect: onCollect}
}

func (p *Pickup) OnFocus() {
	p.Highlighted = !p.Collected
}

func (p *Pickup) OnLoseFocus() {
	p.Highlighted = false
}

func (p *Pickup) OnInteract() {
	if p.Collected {
		return
	}
	p.Collected = true
	p.Highlighted = false
	if p.OnCollect != nil {
		p.OnCollect(p.Item)
	}
}
