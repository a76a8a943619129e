package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/resolution/internal/cli"
	"github.com/theirongolddev/resolution/internal/model"
	"github.com/theirongolddev/resolution/internal/shop"
)

const (
	actionQuit = iota
	actionAdd
	actionUpdate
	actionDelete
	actionPurchase
)

var shopActions = []Choice{
	{Label: "Add new item", Value: actionAdd},
	{Label: "Update item", Value: actionUpdate},
	{Label: "Delete item", Value: actionDelete},
	{Label: "Purchase item", Value: actionPurchase},
	{Label: "Quit", Value: actionQuit},
}

// Shop runs the interactive shop until the user quits.
func (r *Routine) Shop() error {
	for {
		if err := r.showShop(); err != nil {
			return err
		}
		action, err := r.Prompt.Choose("Shop actions", shopActions, actionQuit)
		if err != nil {
			return err
		}

		switch action {
		case actionAdd:
			err = r.addItem()
		case actionUpdate:
			err = r.updateItem()
		case actionDelete:
			err = r.deleteItem()
		case actionPurchase:
			err = r.purchase()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (r *Routine) showShop() error {
	items, err := r.Service.ShopItems()
	if err != nil {
		return err
	}
	balance, err := r.Service.Balance()
	if err != nil {
		return err
	}

	r.println("")
	r.println("  Your balance: " + cli.Coins(balance))
	r.println("")
	if len(items) == 0 {
		r.println(cli.Muted("  No items in the shop yet. Add some with 'resolution shop add'!"))
		return nil
	}
	r.printf("%s", cli.RenderShop(items, balance))
	return nil
}

// report prints domain failures and passes everything else up.
func (r *Routine) report(err error) error {
	if err == nil || !cli.DomainError(err) {
		return err
	}
	r.println(cli.Fail(err.Error()))
	return nil
}

// pickItem asks for one item; only items accepted by keep are offered.
func (r *Routine) pickItem(title string, keep func(model.ShopItem) bool) (model.ShopItem, bool, error) {
	items, err := r.Service.ShopItems()
	if err != nil {
		return model.ShopItem{}, false, err
	}
	var choices []Choice
	byID := map[int]model.ShopItem{}
	for _, it := range items {
		if !keep(it) {
			continue
		}
		byID[it.ID] = it
		choices = append(choices, Choice{
			Label: fmt.Sprintf("%s (%s)", it.Name, cli.FormatCoins(it.Cost)),
			Value: it.ID,
		})
	}
	if len(choices) == 0 {
		r.println(cli.Fail("No items to choose from!"))
		return model.ShopItem{}, false, nil
	}
	choices = append(choices, Choice{Label: "Cancel", Value: 0})

	id, err := r.Prompt.Choose(title, choices, choices[0].Value)
	if err != nil || id == 0 {
		return model.ShopItem{}, false, err
	}
	return byID[id], true, nil
}

func anyItem(model.ShopItem) bool { return true }

func (r *Routine) addItem() error {
	name, err := r.Prompt.Input("Item name", "")
	if err != nil {
		return err
	}
	cost, err := r.Prompt.Number("Cost in coins", 0)
	if err != nil {
		return err
	}
	item, err := r.Service.AddItem(name, cost)
	if err != nil {
		return r.report(err)
	}
	r.println(cli.Success(fmt.Sprintf("Added '%s' for %s!", item.Name, cli.FormatCoins(item.Cost))))
	return nil
}

func (r *Routine) updateItem() error {
	item, ok, err := r.pickItem("Item to update", anyItem)
	if err != nil || !ok {
		return err
	}
	r.println(cli.Muted(fmt.Sprintf("Current: %s (%s)", item.Name, cli.FormatCoins(item.Cost))))

	var p shop.Patch
	name, err := r.Prompt.Input("New name", "Leave empty to keep")
	if err != nil {
		return err
	}
	if name = strings.TrimSpace(name); name != "" {
		p.Name = &name
	}
	costStr, err := r.Prompt.Input("New cost", "Leave empty to keep")
	if err != nil {
		return err
	}
	if costStr = strings.TrimSpace(costStr); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			r.println(cli.Fail("Cost must be a whole number!"))
			return nil
		}
		p.Cost = &cost
	}

	if err := r.Service.UpdateItem(item.ID, p); err != nil {
		return r.report(err)
	}
	r.println(cli.Success("Item updated!"))
	return nil
}

func (r *Routine) deleteItem() error {
	item, ok, err := r.pickItem("Item to delete", anyItem)
	if err != nil || !ok {
		return err
	}
	sure, err := r.Prompt.Confirm(fmt.Sprintf("Delete '%s'?", item.Name), false)
	if err != nil || !sure {
		return err
	}
	if err := r.Service.DeleteItem(item.ID); err != nil {
		return r.report(err)
	}
	r.println(cli.Success("Item deleted!"))
	return nil
}

func (r *Routine) purchase() error {
	item, ok, err := r.pickItem("Item to purchase", func(it model.ShopItem) bool { return !it.Purchased })
	if err != nil || !ok {
		return err
	}
	sure, err := r.Prompt.Confirm(fmt.Sprintf("Purchase '%s' for %s?", item.Name, cli.FormatCoins(item.Cost)), true)
	if err != nil || !sure {
		return err
	}
	msg, err := r.Service.Purchase(item.ID)
	if err != nil {
		return r.report(err)
	}
	r.println(cli.Success(msg))
	return nil
}
