package models

import "strings"

// Privilege is a bitset of per-game capabilities granted to a member.
type Privilege uint32

const (
	PrivilegeEditGame Privilege = 1 << iota
	PrivilegeCreateJoinCode
	PrivilegeActivateJoinCode
	PrivilegeCreateCharacters
	PrivilegeEditCharacters
	PrivilegeDeleteCharacters
	PrivilegeCreateItems
	PrivilegeEditItems
	PrivilegeDeleteItems
	PrivilegeCreateCategories
	PrivilegeEditCategories
	PrivilegeDeleteCategories
	PrivilegeViewCharacters
	PrivilegeViewItems
	PrivilegeViewCategories
	PrivilegeAddItemsToCharacters
	PrivilegeRemoveItemsFromCharacters
	PrivilegeEditCharacterInventory
	PrivilegeViewHistoryLogs
	PrivilegeRemovePlayers

	PrivilegeNone Privilege = 0
)

// privilegeNames keeps declaration order so Names output is stable.
var privilegeNames = []struct {
	flag Privilege
	name string
}{
	{PrivilegeEditGame, "EditGame"},
	{PrivilegeCreateJoinCode, "CreateJoinCode"},
	{PrivilegeActivateJoinCode, "ActivateJoinCode"},
	{PrivilegeCreateCharacters, "CreateCharacters"},
	{PrivilegeEditCharacters, "EditCharacters"},
	{PrivilegeDeleteCharacters, "DeleteCharacters"},
	{PrivilegeCreateItems, "CreateItems"},
	{PrivilegeEditItems, "EditItems"},
	{PrivilegeDeleteItems, "DeleteItems"},
	{PrivilegeCreateCategories, "CreateCategories"},
	{PrivilegeEditCategories, "EditCategories"},
	{PrivilegeDeleteCategories, "DeleteCategories"},
	{PrivilegeViewCharacters, "ViewCharacters"},
	{PrivilegeViewItems, "ViewItems"},
	{PrivilegeViewCategories, "ViewCategories"},
	{PrivilegeAddItemsToCharacters, "AddItemsToCharacters"},
	{PrivilegeRemoveItemsFromCharacters, "RemoveItemsFromCharacters"},
	{PrivilegeEditCharacterInventory, "EditCharacterInventory"},
	{PrivilegeViewHistoryLogs, "ViewHistoryLogs"},
	{PrivilegeRemovePlayers, "RemovePlayers"},
}

// PrivilegeAll is the union of every named privilege. It is computed from the
// vocabulary rather than declared as a catch-all bit so Names can always
// enumerate individual flags.
var PrivilegeAll = func() Privilege {
	var all Privilege
	for _, p := range privilegeNames {
		all |= p.flag
	}
	return all
}()

// OwnerPrivileges is granted to game owners.
var OwnerPrivileges = PrivilegeAll

// PlayerPrivileges is the default set granted when a player joins via code.
// Adjust here to change what new players may do.
const PlayerPrivileges = PrivilegeCreateCharacters |
	PrivilegeEditCharacters |
	PrivilegeCreateItems |
	PrivilegeEditItems |
	PrivilegeDeleteItems |
	PrivilegeViewCharacters |
	PrivilegeViewItems |
	PrivilegeViewCategories |
	PrivilegeAddItemsToCharacters |
	PrivilegeRemoveItemsFromCharacters |
	PrivilegeEditCharacterInventory |
	PrivilegeViewHistoryLogs

// Has reports whether every bit of p2 is present in p.
func (p Privilege) Has(p2 Privilege) bool {
	return p&p2 == p2
}

// Names returns the individual flag names present in the set, in declaration
// order. The full set enumerates every flag; there is no "All" shorthand.
func (p Privilege) Names() []string {
	names := make([]string, 0, len(privilegeNames))
	for _, entry := range privilegeNames {
		if p&entry.flag != 0 {
			names = append(names, entry.name)
		}
	}
	return names
}

// PrivilegeByName maps a flag name back to its bit. Unknown names report false.
func PrivilegeByName(name string) (Privilege, bool) {
	for _, entry := range privilegeNames {
		if entry.name == name {
			return entry.flag, true
		}
	}
	return PrivilegeNone, false
}

func (p Privilege) String() string {
	if p == PrivilegeNone {
		return "None"
	}
	return strings.Join(p.Names(), ", ")
}
