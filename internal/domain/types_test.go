package domain

import (
	"math"
	"testing"
)

func TestParseStructureType(t *testing.T) {
	tests := []struct {
		in   string
		want StructureType
	}{
		{"Turret", StructureTurret},
		{"TURRET", StructureTurret},
		{"obstacle", StructureObstacle},
		{"Wall", StructureWall},
		{"castle", StructureUnknown},
		{"", StructureUnknown},
	}
	for _, tt := range tests {
		if got := ParseStructureType(tt.in); got != tt.want {
			t.Errorf("ParseStructureType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vec3
	}{
		{North, Vec3{Z: -1}},
		{East, Vec3{X: 1}},
		{South, Vec3{Z: 1}},
		{West, Vec3{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.ToVec(); got != tt.want {
				t.Errorf("ToVec = %v, want %v", got, tt.want)
			}
			// Обратная операция возвращает то же направление
			if got := DirectionFromVec(tt.want); got != tt.dir {
				t.Errorf("DirectionFromVec(%v) = %v", tt.want, got)
			}
		})
	}
}

func TestDirectionFromVecDominantAxis(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Direction
	}{
		{"mostly east", Vec3{X: 3, Z: 1}, East},
		{"mostly north", Vec3{X: 1, Z: -3}, North},
		{"tie goes to z axis", Vec3{X: 2, Z: 2}, South},
		{"zero vector", Vec3{}, North},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionFromVec(tt.v); got != tt.want {
				t.Errorf("DirectionFromVec(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestParseDirectionDefaultsSouth(t *testing.T) {
	if got := ParseDirection("sideways"); got != South {
		t.Errorf("Unknown direction = %v, want South", got)
	}
	if got := ParseDirection("north"); got != North {
		t.Errorf("ParseDirection is case-insensitive, got %v", got)
	}
}

func TestRotateY(t *testing.T) {
	forward := Vec3{Z: 1}

	// Поворот на pi/2 переводит локальный +Z в мировой +X
	got := forward.RotateY(math.Pi / 2)
	if math.Abs(got.X-1) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("RotateY(pi/2) = %v, want (1,0,0)", got)
	}

	// Полный оборот возвращает исходный вектор
	got = forward.RotateY(2 * math.Pi)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Z-1) > 1e-9 {
		t.Errorf("RotateY(2pi) = %v, want (0,0,1)", got)
	}

	// Поворот сохраняет длину
	v := Vec3{X: 3, Z: 4}
	if r := v.RotateY(0.7); math.Abs(r.Length()-5) > 1e-9 {
		t.Errorf("Rotation changed length: %v", r.Length())
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(0) = %v", got)
	}
	if got := (Vec3{X: 0, Z: 10}).Normalize(); got != (Vec3{Z: 1}) {
		t.Errorf("Normalize = %v, want unit +Z", got)
	}
}

func TestTurretReadiness(t *testing.T) {
	// Свежепостроенная турель стреляет сразу
	s := NewTurret("owner", East, 100.0)
	if !s.Turret.IsReady(100.0) {
		t.Error("Fresh turret must be ready")
	}

	s.Turret.Shot(100.0)
	if s.Turret.IsReady(100.0 + TurretCooldown - 0.01) {
		t.Error("Turret ready before cooldown elapsed")
	}
	if !s.Turret.IsReady(100.0 + TurretCooldown) {
		t.Error("Turret must be ready exactly at cooldown")
	}
}
