package zorton

// Field is one named member of a record layout.
type Field struct {
	Name   string `json:"name" yaml:"name"`
	Offset int    `json:"offset" yaml:"offset"`
	Size   int    `json:"size" yaml:"size"`
}

// Layout describes the byte layout of a record as the game reads it.
type Layout struct {
	Name   string  `json:"name" yaml:"name"`
	Size   int     `json:"size" yaml:"size"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Offset returns the offset of the named field, or -1.
func (l Layout) Offset(name string) int {
	for _, f := range l.Fields {
		if f.Name == name {
			return f.Offset
		}
	}
	return -1
}

type layoutBuilder struct {
	l Layout
}

func (b *layoutBuilder) add(name string, size int) {
	b.l.Fields = append(b.l.Fields, Field{Name: name, Offset: b.l.Size, Size: size})
	b.l.Size += size
}

func HitboxLayout() Layout {
	b := layoutBuilder{l: Layout{Name: "hitbox"}}
	for _, n := range []string{"y0", "y1", "x0", "x1", "ptr_next_hitbox", "score"} {
		b.add(n, 4)
	}
	return b.l
}

func HeaderChunkLayout() Layout {
	b := layoutBuilder{l: Layout{Name: "header_chunk"}}
	for _, n := range []string{"ptr_frame_init", "ptr_frame_end", "ptr_frame_ko_init", "ptr_frame_ko_end",
		"ptr_unk1", "ptr_unk2", "ptr_unk3", "ptr_unk4"} {
		b.add(n, 4)
	}
	for _, n := range []string{"field1", "field2", "field3", "field4", "field5", "field6"} {
		b.add(n, 1)
	}
	b.add("ptr_callback", 4)
	return b.l
}

func NodeLayout(k Kind) Layout {
	b := layoutBuilder{l: Layout{Name: k.String()}}
	n := TreeLogicNode{Kind: k}
	for _, v := range n.Pointers() {
		b.add(v.Name(), 4)
	}
	b.add("end_chunk", endChunkSize)
	b.add("type_a", 1)
	b.add("type_b", 1)
	b.add("type_chunk", 1)
	b.add("type_d", 1)
	b.add("ptr_callback", 4)
	b.add("ptr_init_struct", 4)
	return b.l
}

// Layouts lists every record layout known to the decoder.
func Layouts() []Layout {
	out := []Layout{HitboxLayout(), HeaderChunkLayout()}
	for _, k := range knownKinds {
		out = append(out, NodeLayout(k))
	}
	return out
}
