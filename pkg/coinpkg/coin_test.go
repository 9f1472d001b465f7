package coinpkg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	for _, d := range Denominations {
		if !IsValid(d) {
			t.Errorf("IsValid(%d) = false, want true", d)
		}
	}

	for _, c := range []int64{0, 1, 3, 15, 25, 200, -5} {
		if IsValid(c) {
			t.Errorf("IsValid(%d) = true, want false", c)
		}
	}
}

func TestSum(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		coins []int64
		want  int64
	}{
		{name: "Empty", coins: nil, want: 0},
		{name: "Single", coins: []int64{50}, want: 50},
		{name: "DepositScenario", coins: []int64{50, 20, 10}, want: 80},
		{name: "Repeats", coins: []int64{100, 100, 5, 5}, want: 210},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Sum(tc.coins); got != tc.want {
				t.Errorf("Sum(%v) = %d, want %d", tc.coins, got, tc.want)
			}
		})
	}
}

func TestMakeChange(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		amount int64
		want   Change
	}{
		{name: "Zero", amount: 0, want: Change{}},
		{name: "SmallestCoin", amount: 5, want: Change{5: 1}},
		{name: "PurchaseScenario", amount: 30, want: Change{20: 1, 10: 1}},
		{name: "EveryDenomination", amount: 185, want: Change{100: 1, 50: 1, 20: 1, 10: 1, 5: 1}},
		{name: "RepeatedLargest", amount: 300, want: Change{100: 3}},
		{name: "GreedySkipsFifty", amount: 40, want: Change{20: 2}},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := MakeChange(tc.amount)
			if err != nil {
				t.Fatalf("MakeChange(%d) returned error: %v", tc.amount, err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("MakeChange(%d) mismatch (-want +got):\n%s", tc.amount, diff)
			}
		})
	}
}

func TestMakeChangeSumsBack(t *testing.T) {
	t.Parallel()

	for amount := int64(0); amount <= 1000; amount += 5 {
		change, err := MakeChange(amount)
		require.NoError(t, err)
		require.Equal(t, amount, change.Total())
	}
}

// Greedy descent is optimal for the canonical denomination set: every coin
// divides the next larger one or is covered by a combination of smaller
// coins worth less than it. Verify against a minimal dynamic program.
func TestMakeChangeIsMinimal(t *testing.T) {
	t.Parallel()

	const limit = 500

	minCoins := make([]int64, limit+1)
	for amount := int64(5); amount <= limit; amount += 5 {
		var best int64 = 1 << 30

		for _, d := range Denominations {
			if d <= amount && minCoins[amount-d]+1 < best {
				best = minCoins[amount-d] + 1
			}
		}

		minCoins[amount] = best
	}

	for amount := int64(0); amount <= limit; amount += 5 {
		change, err := MakeChange(amount)
		require.NoError(t, err)
		require.Equal(t, minCoins[amount], change.Count(), "amount %d", amount)
	}
}

func TestMakeChangeUnrepresentable(t *testing.T) {
	t.Parallel()

	for _, amount := range []int64{1, 3, 7, 23, 101, -5} {
		change, err := MakeChange(amount)
		if change != nil {
			t.Errorf("MakeChange(%d) = %v, want nil", amount, change)
		}

		var unrepresentable UnrepresentableAmountError
		require.ErrorAs(t, err, &unrepresentable)
		require.Equal(t, amount, unrepresentable.Amount)
		require.NotZero(t, unrepresentable.Remainder)
	}
}
