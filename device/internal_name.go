package device

import "strings"

// InternalName identifies a device as "room/name", for example
// "living_room/strip".
type InternalName string

func (n InternalName) split() (room string, name string) {
	room, name, found := strings.Cut(string(n), "/")
	if !found {
		return "", room
	}

	return room, name
}

func (n InternalName) Room() string {
	room, _ := n.split()
	return title(room)
}

func (n InternalName) Name() string {
	_, name := n.split()
	return title(name)
}

func (n InternalName) String() string {
	return string(n)
}

func title(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
