package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "полночь", value: "00:00", wantErr: false},
		{name: "рабочее время", value: "09:30", wantErr: false},
		{name: "конец суток", value: "24:00", wantErr: false},
		{name: "24:30 недопустимо", value: "24:30", wantErr: true},
		{name: "25 часов", value: "25:00", wantErr: true},
		{name: "60 минут", value: "10:60", wantErr: true},
		{name: "без ведущего нуля", value: "9:30", wantErr: true},
		{name: "пустая строка", value: "", wantErr: true},
		{name: "мусор", value: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1440, TimeString("24:00").Minutes())
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("18:00"))
	assert.False(t, TimeString("18:00").IsBefore("09:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), ts)

	// Ровно до конца суток - допустимо
	ts, err = TimeString("23:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	// За пределы суток
	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_ScanTrimsSeconds(t *testing.T) {
	// Postgres TIME приходит как "HH:MM:SS"
	var ts TimeString
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:00:00")))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.NoError(t, ts.Scan(time.Date(2025, 10, 14, 12, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("99:99").Value()
	assert.Error(t, err)
}
