package zorton

import "errors"

var (
	ErrShortRecord  = errors.New("record truncated")
	ErrUnknownKind  = errors.New("unknown tree logic node kind")
	ErrUnknownSize  = errors.New("unknown record size")
	ErrHitboxChain  = errors.New("broken hitbox chain")
	ErrBadContainer = errors.New("not a valid report container")
	ErrChecksum     = errors.New("report checksum mismatch")
)
