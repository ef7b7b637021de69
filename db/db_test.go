package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogAndQueryRowShouldReturnResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"streak", "last_checked_date"}).AddRow(4, "2024-01-02")
	mock.ExpectQuery("SELECT streak, last_checked_date FROM streak_state").WillReturnRows(rows)

	var streak int
	var date string
	err = LogAndQueryRow(context.Background(), discardLogger(), db, "SELECT streak, last_checked_date FROM streak_state").Scan(&streak, &date)

	assert.NoError(t, err)
	assert.Equal(t, 4, streak)
	assert.Equal(t, "2024-01-02", date)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogAndExecShouldReturnResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE streak_state SET streak \\= \\$1").
		WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := LogAndExec(context.Background(), nil, db, "UPDATE streak_state SET streak = $1", 2)

	assert.NoError(t, err)
	count, _ := res.RowsAffected()
	assert.Equal(t, int64(1), count)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogAndExecShouldReturnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM streak_state").WillReturnError(errors.New("connection reset"))

	res, err := LogAndExec(context.Background(), discardLogger(), db, "DELETE FROM streak_state")

	assert.Nil(t, res)
	assert.EqualError(t, err, "exec: connection reset")
}

func TestDataSource(t *testing.T) {
	driver, dsn, err := dataSource(Options{URL: "postgres://localhost/streak"})
	assert.NoError(t, err)
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "postgres://localhost/streak", dsn)

	driver, dsn, err = dataSource(Options{
		URL:                "ignored",
		CloudSQLConnection: "project:region:instance",
		CloudSQLUser:       "writer",
		CloudSQLPassword:   "secret",
		CloudSQLDatabase:   "streak",
	})
	assert.NoError(t, err)
	assert.Equal(t, "cloudsqlpostgres", driver)
	assert.Equal(t, "host=project:region:instance dbname=streak user=writer password=secret sslmode=disable", dsn)

	_, _, err = dataSource(Options{})
	assert.True(t, errors.Is(err, ErrNoDatabase))
}
