package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopelint/internal/project"
	"scopelint/internal/rule"
)

func TestErrorPrefix(t *testing.T) {
	src := `contract Counter {
  error Counter_Ok();
  error InvalidError();
  error AnotherInvalidError(uint256 x);
}
contract Other {
  error Counter_WrongOwner();
}
error FreeError();
`
	got := lintWith(t, project.KindSrc, src, ErrorPrefix{})
	assert.Equal(t, []finding{
		{3, "Error 'InvalidError' should be prefixed with 'Counter_'"},
		{4, "Error 'AnotherInvalidError' should be prefixed with 'Counter_'"},
		{7, "Error 'Counter_WrongOwner' should be prefixed with 'Other_'"},
	}, got)

	assert.Empty(t, lintWith(t, project.KindScript, src, ErrorPrefix{}), "scripts are not checked")
	assert.Len(t, lintWith(t, project.KindHandler, src, ErrorPrefix{}), 3)
}

func TestEventPrefix(t *testing.T) {
	src := `contract Vault {
  event Vault_Deposited(address indexed who);
  event Withdrawn(address indexed who);
}`
	got := lintWith(t, project.KindTest, src, EventPrefix{})
	assert.Equal(t, []finding{{3, "Event 'Withdrawn' should be prefixed with 'Vault_'"}}, got)
	assert.Empty(t, lintWith(t, project.KindHandler, src, EventPrefix{}))
}

func TestConstantNames(t *testing.T) {
	src := `uint256 constant free_const = 1;
contract C {
  uint256 immutable _GOOD__IMMUTABLE_;
  uint256 internal immutable badImmutable;
  uint256 private constant bad_constant = 1;
  uint256 constant VERY_bad_constant = 2;
  uint256 constant MAX_2 = 3;
  uint256 public plainVariable;
}`
	got := lintWith(t, project.KindScriptHelper, src, ConstantNames{})
	assert.Equal(t, []string{"free_const", "badImmutable", "bad_constant", "VERY_bad_constant"}, messages(got))
	assert.Equal(t, uint32(4), got[1].Line)
}

func TestTestNames(t *testing.T) {
	valid := []string{
		"test_Increment",
		"testFuzz_SetNumber",
		"testFork_Deposit",
		"testForkFuzz_Deposit",
		"test_RevertIf_Zero",
		"test_RevertWhen_Paused",
		"test_RevertOn_Overflow",
		"test_RevertGiven_NoBalance",
		"testFuzz_RevertIf_TooLarge",
		"setUp",
		"helper",
	}
	for _, name := range valid {
		assert.True(t, IsValidTestName(name), name)
	}
	invalid := []string{"testIncrementBadName", "test", "testRevert_Foo", "testfuzz_Foo"}
	for _, name := range invalid {
		assert.False(t, IsValidTestName(name), name)
	}

	src := `contract CounterTest {
  function setUp() public {}
  function test_Increment() public {}

  function testIncrementBadName() public {}
}`
	got := lintWith(t, project.KindTest, src, TestNames{})
	assert.Equal(t, []finding{{5, "testIncrementBadName"}}, got)
	assert.Empty(t, lintWith(t, project.KindSrc, src, TestNames{}))
}

func TestSrcInternal(t *testing.T) {
	src := `contract Counter {
  function increment() public {}
  function _good() internal {}
  function internalShouldHaveLeadingUnderscore() internal {}
  function privateShouldHaveLeadingUnderscore() private {}
  function external_() external {}
}`
	got := lintWith(t, project.KindSrc, src, SrcInternal{})
	assert.Equal(t, []finding{
		{4, "internalShouldHaveLeadingUnderscore"},
		{5, "privateShouldHaveLeadingUnderscore"},
	}, got)
	assert.Empty(t, lintWith(t, project.KindTest, src, SrcInternal{}))
}

func TestSpdxHeader(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"first line", "// SPDX-License-Identifier: MIT\npragma solidity ^0.8.0;\n", true},
		{"after blank and comments", "\n\n// header\n/* note */\n// SPDX-License-Identifier: UNLICENSED\n", true},
		{"indented", "   // SPDX-License-Identifier: MIT\n", true},
		{"after code", "pragma solidity ^0.8.0;\n// SPDX-License-Identifier: MIT\n", false},
		{"missing", "pragma solidity ^0.8.0;\n", false},
		{"empty", "", false},
		{"wrong spacing", "//SPDX-License-Identifier: MIT\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasSpdxHeader(tt.src))
		})
	}

	got := lintWith(t, project.KindSrc, "pragma solidity ^0.8.0;\ncontract C {}\n", SpdxHeader{})
	assert.Equal(t, []finding{{1, "Missing SPDX-License-Identifier header"}}, got)
	assert.Empty(t, lintWith(t, project.KindTest, "contract C {}", SpdxHeader{}))
}

func TestScriptRun(t *testing.T) {
	ok := `contract Deploy {
  function setUp() public {}
  function run() public {}
  function _helper() internal {}
}`
	assert.Empty(t, lintWith(t, project.KindScript, ok, ScriptRun{}))

	tooMany := `contract Deploy {
  function run() public {}
  function other() external {}
}`
	got := lintWith(t, project.KindScript, tooMany, ScriptRun{})
	require.Len(t, got, 1)
	assert.Equal(t, scriptRunMessage, got[0].Message)

	wrongName := "contract Deploy { function deploy() public {} }"
	assert.Len(t, lintWith(t, project.KindScript, wrongName, ScriptRun{}), 1)

	assert.Empty(t, lintWith(t, project.KindScriptHelper, tooMany, ScriptRun{}))
	assert.Empty(t, lintWith(t, project.KindScript, "pragma solidity ^0.8.0;", ScriptRun{}))
}

func TestVariableNames(t *testing.T) {
	src := `contract Counter {
  uint256 public number;
  uint256 immutable _GOOD__IMMUTABLE_;
  function setNumber(uint256 newNumber, uint256 _ok) public {
    uint256 _fine = 1;
    uint256 x = 2;
    Deposit storage deposit = deposits[_ok];
    Deposit storage _deposit = deposits[_ok];
    for (uint256 i = 0; i < 1; i++) {
      if (true) { uint256 inner = 1; }
    }
  }
  function useStorage(Deposit storage d, Deposit storage _d) internal {}
  modifier only(address who) { _; }
}
function free(uint256 a) pure {}
`
	got := lintWith(t, project.KindSrc, src, VariableNames{})
	assert.Equal(t, []finding{
		{3, "State variable '_GOOD__IMMUTABLE_' should NOT have underscore prefix"},
		{4, "Parameter 'newNumber' should have underscore prefix"},
		{6, "Local variable 'x' should have underscore prefix"},
		{8, "Storage variable '_deposit' should NOT have underscore prefix"},
		{9, "Local variable 'i' should have underscore prefix"},
		{10, "Local variable 'inner' should have underscore prefix"},
		{13, "Storage parameter '_d' should NOT have underscore prefix"},
		{14, "Parameter 'who' should have underscore prefix"},
		{16, "Parameter 'a' should have underscore prefix"},
	}, got)
	assert.Empty(t, lintWith(t, project.KindScriptHelper, src, VariableNames{}))
}

func TestUnusedImports(t *testing.T) {
	src := `import {ERC20, IERC20} from "./ERC20.sol";
import {Ownable as Owned} from "./Ownable.sol";
import "./Lib.sol" as Lib;
import * as Everything from "./All.sol";
import "./Plain.sol";
import {Used} from "./Used.sol";

// IERC20 in a comment does not count
contract MyContract is Owned {
  ERC20 public token;
  string constant NAME = "Lib";
  function f() public { Used.call(); }
}`
	got := lintWith(t, project.KindTest, src, UnusedImports{})
	assert.Equal(t, []finding{
		{1, "Unused import: 'IERC20'"},
		{3, "Unused import: 'Lib'"},
		{4, "Unused import: 'Everything'"},
	}, got)
}

func TestEip712Typehash(t *testing.T) {
	src := `contract MyContract {
  bytes32 constant STAKE_TYPEHASH = keccak256("Stake(uint256 amount,address delegatee,address claimer,address depositor,uint256 nonce,uint256 deadline)");
  bytes32 constant WRONG_TYPEHASH = keccak256('Wrong(uint256 param1,uint256 param2,uint256 param3)');
  bytes32 constant PACKED_TYPEHASH = keccak256("Packed(uint256 a,uint256 b)");
  bytes32 constant TYPEHASH_Missing = bytes32(0);
  bytes32 constant NESTED_TYPEHASH = keccak256("Nested(uint256 a,uint256 b)");

  function a() external {
    bytes32 h1 = keccak256(abi.encode(STAKE_TYPEHASH, amount, delegatee, claimer, depositor, nonce, deadline));
    bytes32 h2 = keccak256(abi.encode(WRONG_TYPEHASH, param1, param2));
    bytes32 h3 = keccak256(abi.encodePacked(PACKED_TYPEHASH, a));
    bytes32 h4 = keccak256(abi.encode(NESTED_TYPEHASH, f(x, y), z));
  }
}`
	got := lintWith(t, project.KindSrc, src, Eip712Typehash{})
	assert.Equal(t, []finding{
		{3, "EIP712 typehash 'WRONG_TYPEHASH' parameter mismatch: typehash defines 3 parameters but abi.encode usage uses 2 parameters"},
		{5, "Typehash 'TYPEHASH_Missing' for struct 'Missing' has no keccak256 string - this will cause signature mismatches"},
	}, got)
	assert.Empty(t, lintWith(t, project.KindTest, src, Eip712Typehash{}))
}

func TestTypeParamCount(t *testing.T) {
	assert.Equal(t, 3, TypeParamCount("Mail(Person from,Person to,string contents)Person(string name,address wallet)"))
	assert.Equal(t, 1, TypeParamCount("One(uint256 a)"))
	assert.Equal(t, 0, TypeParamCount("Empty()"))
	assert.Equal(t, 0, TypeParamCount("not a type"))
}

func TestSelectAndDefault(t *testing.T) {
	all := Default()
	seen := make(map[rule.ID]bool)
	for _, r := range all {
		assert.True(t, r.ID().Inline(), "%T has a non-inline id", r)
		assert.NotEmpty(t, r.Description())
		seen[r.ID()] = true
	}
	for _, id := range rule.Inline() {
		assert.True(t, seen[id], "no rule for %s", id)
	}

	picked := Select(all, []rule.ID{rule.Src})
	require.Len(t, picked, 2)
	assert.Equal(t, all, Select(all, nil))
}
