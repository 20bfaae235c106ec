package storage

// requiredTables are the logs this package reads. A file lacking either one
// is not treated as a collection.
var requiredTables = []string{"revlog", "cards"}

// CollectionSchema is the subset of the Anki collection schema that the
// queries in this package touch. Fixtures use it to build test collections.
const CollectionSchema = `
-- 'revlog' holds one row per review. The id is the review time in ms since
-- the epoch and doubles as the ordering key; 'time' is the answer duration in ms.
CREATE TABLE IF NOT EXISTS revlog (
    id INTEGER PRIMARY KEY,
    cid INTEGER NOT NULL DEFAULT 0,
    ease INTEGER NOT NULL DEFAULT 3,
    time INTEGER NOT NULL DEFAULT 0
);

-- 'cards' holds one row per card. The id is the creation time in ms.
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY,
    nid INTEGER NOT NULL DEFAULT 0,
    did INTEGER NOT NULL DEFAULT 1
);
`
