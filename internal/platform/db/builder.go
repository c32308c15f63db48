package db

import "github.com/Masterminds/squirrel"

// Builder is a squirrel statement builder using PostgreSQL placeholders.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
