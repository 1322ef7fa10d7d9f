package models

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestProject_Fields(t *testing.T) {
	typ := reflect.TypeOf(Project{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "Name", "not null")
	assertGormTag(t, typ, "Description", "type:text")
	assertGormTag(t, typ, "Status", "default:active")
	assertGormTag(t, typ, "Status", "index")
	assertGormTag(t, typ, "TechStack", "type:json")
	assertFieldType(t, typ, "ArchivedAt", "*time.Time")
	assertFieldType(t, typ, "CreatedAt", reflect.TypeOf(time.Time{}).String())
}

func TestTask_Fields(t *testing.T) {
	typ := reflect.TypeOf(Task{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ProjectID", "not null")
	assertGormTag(t, typ, "ProjectID", "index")
	assertGormTag(t, typ, "Title", "not null")
	assertGormTag(t, typ, "Status", "default:ready")
	assertGormTag(t, typ, "Status", "index")
	assertGormTag(t, typ, "Priority", "default:medium")
	assertFieldType(t, typ, "Progress", "*int")
	assertFieldType(t, typ, "CompletedAt", "*time.Time")
}

func TestTaskDep_CompositeKey(t *testing.T) {
	typ := reflect.TypeOf(TaskDep{})

	assertGormTag(t, typ, "TaskID", "primaryKey")
	assertGormTag(t, typ, "DependsOn", "primaryKey")
}
