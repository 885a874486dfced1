package lang

import "testing"

func TestDetect(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"english", "My laptop will not connect to the office network anymore", "en"},
		{"german", "Mein Drucker funktioniert seit dem letzten Update nicht mehr richtig", "de"},
		{"french", "Je n'arrive pas à me connecter au réseau depuis ce matin", "fr"},
		{"spanish", "No puedo acceder a mi cuenta de correo electrónico desde ayer", "es"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detector.Detect(tt.text)
			if !ok {
				t.Fatal("expected a confident detection")
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectBlankInput(t *testing.T) {
	detector := NewDetector()

	for _, text := range []string{"", "   ", "\n\t"} {
		if tag, ok := detector.Detect(text); ok {
			t.Fatalf("blank input %q detected as %q", text, tag)
		}
	}
}
