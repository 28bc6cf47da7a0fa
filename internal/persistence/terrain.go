package persistence

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/hearthold/internal/world"
)

// EncodeTerrain packs the tile grid as little-endian uint16 and compresses it.
func EncodeTerrain(m *world.Map) ([]byte, error) {
	raw := make([]byte, 2*len(m.Tiles))
	for i, t := range m.Tiles {
		binary.LittleEndian.PutUint16(raw[2*i:], t)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// DecodeTerrain reverses EncodeTerrain.
func DecodeTerrain(width, height int, blob []byte) (*world.Map, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if len(raw) != 2*width*height {
		return nil, fmt.Errorf("terrain is %d bytes, want %d", len(raw), 2*width*height)
	}
	m := world.NewMap(width, height)
	for i := range m.Tiles {
		m.Tiles[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return m, nil
}

// SaveTerrain stores the terrain of a run.
func (db *DB) SaveTerrain(runID string, m *world.Map) error {
	blob, err := EncodeTerrain(m)
	if err != nil {
		return fmt.Errorf("encode terrain: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO terrain (run_id, width, height, tiles) VALUES (?, ?, ?, ?)",
		runID, m.Width, m.Height, blob,
	)
	return err
}

// LoadTerrain reads back the terrain of a run.
func (db *DB) LoadTerrain(runID string) (*world.Map, error) {
	var row struct {
		Width  int    `db:"width"`
		Height int    `db:"height"`
		Tiles  []byte `db:"tiles"`
	}
	if err := db.conn.Get(&row, "SELECT width, height, tiles FROM terrain WHERE run_id = ?", runID); err != nil {
		return nil, err
	}
	return DecodeTerrain(row.Width, row.Height, row.Tiles)
}
