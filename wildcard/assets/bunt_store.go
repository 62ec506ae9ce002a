package assets

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/buntdb"
	"go.uber.org/zap"
)

const (
	namePrefix = "asset:"
	metaCount  = "meta:count"
)

// BuntStore 把名称表快照存在 buntdb 中，保留原有顺序
// 模型目录很大或在网络盘上时，可以只在需要时 Sync 一次
type BuntStore struct {
	db *buntdb.DB
}

// OpenBuntStore path 为 ":memory:" 时不落盘
func OpenBuntStore(path string) (*BuntStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset store %s: %w", path, err)
	}
	return &BuntStore{db: db}, nil
}

func (s *BuntStore) Close() error {
	return s.db.Close()
}

func nameKey(idx int) string {
	return fmt.Sprintf("%s%010d", namePrefix, idx)
}

// Replace 用 names 整体替换快照
func (s *BuntStore) Replace(names []string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		var stale []string
		err := tx.AscendKeys(namePrefix+"*", func(key, _ string) bool {
			stale = append(stale, key)
			return true
		})
		if err != nil {
			return err
		}
		for _, key := range stale {
			if _, err := tx.Delete(key); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return err
			}
		}

		for i, name := range names {
			if _, _, err := tx.Set(nameKey(i), name, nil); err != nil {
				return err
			}
		}
		_, _, err = tx.Set(metaCount, strconv.Itoa(len(names)), nil)
		return err
	})
}

// Names 按写入顺序返回快照
func (s *BuntStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(namePrefix+"*", func(_, value string) bool {
			names = append(names, value)
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Count 快照条数，未写入过时为 0
func (s *BuntStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(metaCount)
		if err != nil {
			if errors.Is(err, buntdb.ErrNotFound) {
				return nil
			}
			return err
		}
		n, err = strconv.Atoi(v)
		return err
	})
	return n, err
}

// Sync 从 src 重新拉取名称表写入快照
func (s *BuntStore) Sync(src NameSource) error {
	names, err := src.Names()
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	if err := s.Replace(names); err != nil {
		return fmt.Errorf("store assets: %w", err)
	}
	zap.S().Named("assets").Debugf("asset snapshot updated, %d names", len(names))
	return nil
}
