package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"salespulse/internal/loader"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store SQLite 存储层
// 只缓存加载步骤的产物：规范表按工作簿内容哈希存取，
// 相同字节的工作簿直接命中缓存，跳过重新解析。解析数据本身不做跨次持久化。
type Store struct {
	db *sql.DB
}

// New 创建新的 Store 实例
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 建议单连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化数据库结构
func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetCachedLoad 按内容哈希取缓存的加载产物，未命中返回 (nil, nil)
func (s *Store) GetCachedLoad(contentKey string) (*loader.Result, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM load_cache WHERE content_key = ?`, contentKey,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query load cache: %w", err)
	}

	var result loader.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		// 缓存损坏当作未命中处理，由调用方重新解析覆盖
		return nil, nil
	}
	return &result, nil
}

// PutCachedLoad 写入加载产物缓存
func (s *Store) PutCachedLoad(result *loader.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal load result: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO load_cache (content_key, path, payload, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(content_key) DO UPDATE SET path = excluded.path, payload = excluded.payload, created_at = excluded.created_at`,
		result.ContentKey, result.Path, payload, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write load cache: %w", err)
	}
	return nil
}
