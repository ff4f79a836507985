package store

// Schema v1 - the full project store schema. Every statement is
// create-if-absent so initialization can run on every startup.
//
// Foreign keys are declared with ON DELETE CASCADE and rely on
// PRAGMA foreign_keys=ON being set by the store (see applyPragmas).
// characters_json on scenes is deliberately not a foreign key: it
// holds soft references that may dangle after a character is deleted.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Creative work units; the ownership root
CREATE TABLE IF NOT EXISTS projects (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  genre TEXT DEFAULT 'drama',
  synopsis TEXT DEFAULT '',
  tone TEXT DEFAULT 'cinematic',
  created_at TEXT DEFAULT (datetime('now')),
  updated_at TEXT DEFAULT (datetime('now'))
);

-- Reusable personas owned by a project
CREATE TABLE IF NOT EXISTS characters (
  id TEXT PRIMARY KEY,
  project_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT DEFAULT '',
  photo_data TEXT DEFAULT '',
  created_at TEXT DEFAULT (datetime('now')),
  FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Ordered storyboard units; sort_order is the canonical sequence,
-- scene_number is author-facing metadata and may diverge
CREATE TABLE IF NOT EXISTS scenes (
  id TEXT PRIMARY KEY,
  project_id TEXT NOT NULL,
  scene_number INTEGER NOT NULL,
  title TEXT DEFAULT '',
  description TEXT DEFAULT '',
  prompt TEXT DEFAULT '',
  camera_angle TEXT DEFAULT 'medium shot',
  lighting TEXT DEFAULT 'natural',
  duration INTEGER DEFAULT 5,
  dialog TEXT DEFAULT '',
  characters_json TEXT DEFAULT '[]',
  status TEXT DEFAULT 'pending',
  video_url TEXT DEFAULT '',
  sort_order INTEGER DEFAULT 0,
  created_at TEXT DEFAULT (datetime('now')),
  FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- One row per invocation of an external generation provider
CREATE TABLE IF NOT EXISTS video_jobs (
  id TEXT PRIMARY KEY,
  scene_id TEXT NOT NULL,
  provider TEXT NOT NULL,
  job_id TEXT NOT NULL,
  status TEXT DEFAULT 'queued',
  video_url TEXT DEFAULT '',
  cost REAL DEFAULT 0.0,
  started_at TEXT DEFAULT (datetime('now')),
  completed_at TEXT,
  FOREIGN KEY (scene_id) REFERENCES scenes(id) ON DELETE CASCADE
);

-- Flat application configuration (API keys, preferences)
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_characters_project ON characters(project_id);
CREATE INDEX IF NOT EXISTS idx_scenes_project ON scenes(project_id);
CREATE INDEX IF NOT EXISTS idx_scenes_order ON scenes(project_id, sort_order);
CREATE INDEX IF NOT EXISTS idx_jobs_scene ON video_jobs(scene_id);
`
