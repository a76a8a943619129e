package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/resolution/internal/cli"
	"github.com/theirongolddev/resolution/internal/routine"
	"github.com/theirongolddev/resolution/internal/shop"
)

var (
	flagItemName string
	flagItemCost int
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Manage the reward shop",
	RunE:  runShop,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all shop items",
	Args:  cobra.NoArgs,
	RunE:  runShopList,
}

var shopAddCmd = &cobra.Command{
	Use:   "add NAME COST",
	Short: "Add a new item to the shop",
	Args:  cobra.ExactArgs(2),
	RunE:  runShopAdd,
}

var shopUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change an item's name or cost",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopUpdate,
}

var shopDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an item from the shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopDelete,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy ID",
	Short: "Purchase an item from the shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

func init() {
	shopUpdateCmd.Flags().StringVar(&flagItemName, "name", "", "New item name")
	shopUpdateCmd.Flags().IntVar(&flagItemCost, "cost", 0, "New item cost")

	shopCmd.AddCommand(shopListCmd, shopAddCmd, shopUpdateCmd, shopDeleteCmd, shopBuyCmd)
	rootCmd.AddCommand(shopCmd)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

// report prints domain failures as styled messages; other errors fail the
// command.
func report(err error) error {
	if cli.DomainError(err) {
		fmt.Println(cli.Fail(err.Error()))
		return nil
	}
	return err
}

func printShop(svc *routine.Service) error {
	items, err := svc.ShopItems()
	if err != nil {
		return err
	}
	balance, err := svc.Balance()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Your balance: %s\n\n", cli.Coins(balance))
	if len(items) == 0 {
		fmt.Println(cli.Muted("  No items in the shop yet. Add some with 'resolution shop add'!"))
		fmt.Println()
		return nil
	}
	fmt.Print(cli.RenderShop(items, balance))
	fmt.Println()
	return nil
}

func runShop(_ *cobra.Command, _ []string) error {
	svc, cfg, err := openService(false)
	if err != nil {
		return err
	}
	err = newRoutine(svc, cfg).Shop()
	return interrupted(err, "Shop closed.")
}

func runShopList(_ *cobra.Command, _ []string) error {
	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	return printShop(svc)
}

func runShopAdd(_ *cobra.Command, args []string) error {
	cost, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid cost %q", args[1])
	}
	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	item, err := svc.AddItem(args[0], cost)
	if err != nil {
		return report(err)
	}
	fmt.Println(cli.Success(fmt.Sprintf("Added '%s' for %s! (id %d)", item.Name, cli.FormatCoins(item.Cost), item.ID)))
	return nil
}

func runShopUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var p shop.Patch
	if cmd.Flags().Changed("name") {
		p.Name = &flagItemName
	}
	if cmd.Flags().Changed("cost") {
		p.Cost = &flagItemCost
	}
	if p.Name == nil && p.Cost == nil {
		return fmt.Errorf("nothing to update: pass --name and/or --cost")
	}

	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	if err := svc.UpdateItem(id, p); err != nil {
		return report(err)
	}
	fmt.Println(cli.Success(fmt.Sprintf("Item %d updated!", id)))
	return nil
}

func runShopDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	if err := svc.DeleteItem(id); err != nil {
		return report(err)
	}
	fmt.Println(cli.Success(fmt.Sprintf("Item %d deleted!", id)))
	return nil
}

func runShopBuy(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	svc, _, err := openService(false)
	if err != nil {
		return err
	}
	msg, err := svc.Purchase(id)
	if err != nil {
		return report(err)
	}
	fmt.Println(cli.Success(msg))
	return nil
}
