package repository

import "testing"

func TestSlugify(t *testing.T) {
    cases := []struct{ in, want string }{
        {"Alger Centre", "alger-centre"},
        {"  Oran -- Front de Mer  ", "oran-front-de-mer"},
        {"Béjaïa", "b-ja-a"},
        {"Hotel*** 5", "hotel-5"},
        {"", ""},
        {"---", ""},
    }
    for _, tc := range cases {
        if got := Slugify(tc.in); got != tc.want {
            t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
        }
    }
}
