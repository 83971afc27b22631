package dataset

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Summary は DatasetSummary サイドカーです。スコアリングには使われません。
type Summary struct {
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	DatasetHash string          `json:"dataset_hash"`
	Columns     []ColumnProfile `json:"columns"`
}

// Summarize builds the summary of a dataset.
func Summarize(ds *Dataset) Summary {
	return Summary{
		RowCount:    ds.NumRows(),
		ColumnCount: ds.NumColumns(),
		DatasetHash: Hash(ds),
		Columns:     Profiles(ds),
	}
}

// Hash returns the hex SHA-256 content hash of a dataset. The hash is
// order-sensitive over columns and rows and covers column names, kinds and
// every cell; missing cells are encoded distinctly from any value.
func Hash(ds *Dataset) string {
	h := sha256.New()
	writeUint(h, uint64(ds.NumRows()))
	writeUint(h, uint64(ds.NumColumns()))
	for _, c := range ds.cols {
		writeString(h, c.Name())
		writeString(h, c.Kind().String())
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				h.Write([]byte{0})
				continue
			}
			h.Write([]byte{1})
			writeString(h, c.Key(i))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeString(h hash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}
